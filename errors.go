package gss

import (
	"errors"
	"fmt"

	"github.com/gssio/gss/internal/encoding/codec"
)

// ErrorKind classifies the errors returned by this package.
type ErrorKind int

const (
	// KindUnknown is reported for errors that did not originate here.
	KindUnknown ErrorKind = iota
	KindUnsupportedFormat
	KindUnsupportedOptionCombination
	KindInvalidOption
	KindInvalidShape
	KindEncode
	KindDecode
)

var errorKindNames = [...]string{
	KindUnknown:                      "Unknown",
	KindUnsupportedFormat:            "UnsupportedFormat",
	KindUnsupportedOptionCombination: "UnsupportedOptionCombination",
	KindInvalidOption:                "InvalidOption",
	KindInvalidShape:                 "InvalidShape",
	KindEncode:                       "Encode",
	KindDecode:                       "Decode",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ErrorKindOf returns the kind of the most specific error in err's chain.
func ErrorKindOf(err error) ErrorKind {
	var (
		formatErr UnsupportedFormatError
		comboErr  *UnsupportedOptionCombinationError
		optionErr *InvalidOptionError
		shapeErr  *InvalidShapeError
		encodeErr *EncodeError
		decodeErr *DecodeError
	)

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &formatErr):
		return KindUnsupportedFormat
	case errors.As(err, &comboErr):
		return KindUnsupportedOptionCombination
	case errors.As(err, &optionErr):
		return KindInvalidOption
	case errors.As(err, &shapeErr):
		return KindInvalidShape
	case errors.As(err, &encodeErr):
		return KindEncode
	case errors.As(err, &decodeErr):
		return KindDecode
	}
	return KindUnknown
}

// UnsupportedFormatError denotes encountering an unknown format name.
type UnsupportedFormatError string

// Error returns the formatted error.
func (str UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q", string(str))
}

// UnsupportedOptionCombinationError denotes options that cannot be honoured
// by a format in the requested direction.
type UnsupportedOptionCombinationError struct {
	Format string
	Reason string
}

// Error returns the formatted error.
func (e *UnsupportedOptionCombinationError) Error() string {
	return fmt.Sprintf("unsupported option combination for format %q: %s", e.Format, e.Reason)
}

// InvalidOptionError happens when an option value cannot be converted to
// the option's type.
type InvalidOptionError struct {
	Key   string
	Value any
	err   error
}

// Error returns the formatted error.
func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid value %#v for option %q: %s", e.Value, e.Key, e.err)
}

func (e *InvalidOptionError) Unwrap() error {
	return e.err
}

// InvalidShapeError is returned when a document's shape is not supported by
// the target format, e.g. a sequence given to toml or properties.
type InvalidShapeError = codec.InvalidShapeError

// EncodeError happens when a codec fails to encode a document.
type EncodeError struct {
	Format string
	err    error
}

// Error returns the formatted error.
func (e *EncodeError) Error() string {
	return "error serializing: " + e.err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.err
}

// DecodeError happens when a codec fails to decode its input.
type DecodeError struct {
	Format string
	err    error
}

// Error returns the formatted error.
func (e *DecodeError) Error() string {
	return "error deserializing: " + e.err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

// operationError names the facade operation that failed.
type operationError struct {
	op  string
	err error
}

func (e *operationError) Error() string {
	return e.op + ": " + e.err.Error()
}

func (e *operationError) Unwrap() error {
	return e.err
}

func serializeError(err error) error {
	return &operationError{op: "error serializing input object", err: err}
}

func deserializeError(err error) error {
	return &operationError{op: "error deserializing input string", err: err}
}
