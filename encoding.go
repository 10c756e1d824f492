package gss

import (
	"github.com/gssio/gss/internal/encoding"
)

// Capabilities describe what a format supports.
type Capabilities = encoding.Capabilities

// FormatCapabilities returns the capabilities of a format.
//
// The error is UnsupportedFormatError if the format is unknown.
func FormatCapabilities(format string) (Capabilities, error) {
	f, err := registry.Lookup(format)
	if err != nil {
		return Capabilities{}, UnsupportedFormatError(format)
	}
	return f.Capabilities, nil
}

// CanDecode reports whether a format can be deserialized.
func CanDecode(format string) bool {
	c, err := FormatCapabilities(format)
	return err == nil && c.Decode
}
