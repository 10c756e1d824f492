// Package gss converts structured data between serialization formats.
//
// Every format decodes into, and encodes from, the same ordered
// Document model, so any decodable format can be converted into any
// other:
//
//	out, err := gss.ConvertString(`{"a":"x","b":"y"}`, "json", "yaml", nil, nil)
//
// The supported formats are reported by Formats.
package gss

import (
	"github.com/gssio/gss/internal/encoding"
)

var registry = encoding.NewCodecRegistry()

// Formats returns the supported format names in a stable order.
func Formats() []string {
	return registry.Formats()
}

// Serialize encodes doc into format.
func Serialize(doc Document, format string, opts ...Option) ([]byte, error) {
	_, s, err := resolveOptions(registry, format, encode, opts)
	if err != nil {
		s.logger.ERROR.Printf("serialize %s: %s", format, err)
		return nil, serializeError(err)
	}

	s.logger.DEBUG.Printf("serializing %s document to %s", doc.NativeType(), format)

	b, err := registry.Encode(format, doc, s.opts)
	if err != nil {
		s.logger.ERROR.Printf("serialize %s: %s", format, err)
		return nil, serializeError(&EncodeError{Format: format, err: err})
	}

	return b, nil
}

// SerializeString is like Serialize but returns a string.
func SerializeString(doc Document, format string, opts ...Option) (string, error) {
	b, err := Serialize(doc, format, opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Deserialize decodes b from format.
func Deserialize(b []byte, format string, opts ...Option) (Document, error) {
	_, s, err := resolveOptions(registry, format, decode, opts)
	if err != nil {
		s.logger.ERROR.Printf("deserialize %s: %s", format, err)
		return Document{}, deserializeError(err)
	}

	s.logger.DEBUG.Printf("deserializing %d bytes of %s", len(b), format)

	doc, err := registry.Decode(format, b, s.opts)
	if err != nil {
		s.logger.ERROR.Printf("deserialize %s: %s", format, err)
		return Document{}, deserializeError(&DecodeError{Format: format, err: err})
	}

	return doc, nil
}

// DeserializeString is like Deserialize but takes a string.
func DeserializeString(str string, format string, opts ...Option) (Document, error) {
	return Deserialize([]byte(str), format, opts...)
}

// Convert decodes b from one format and encodes the result into another.
// Decode failures are returned as is; the encode step never runs.
func Convert(b []byte, from, to string, decodeOpts, encodeOpts []Option) ([]byte, error) {
	doc, err := Deserialize(b, from, decodeOpts...)
	if err != nil {
		return nil, err
	}
	return Serialize(doc, to, encodeOpts...)
}

// ConvertString is like Convert for strings.
func ConvertString(str string, from, to string, decodeOpts, encodeOpts []Option) (string, error) {
	b, err := Convert([]byte(str), from, to, decodeOpts, encodeOpts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
