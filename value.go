package gss

import (
	"github.com/gssio/gss/internal/value"
)

type (
	// Value is a null, string, number, bool, record or sequence.
	Value = value.Value

	// Record is an ordered mapping from string keys to values.
	Record = value.Record

	// Document is either a single Record or a sequence of Records.
	Document = value.Document

	// Kind identifies the type held by a Value.
	Kind = value.Kind
)

const (
	KindNull     = value.KindNull
	KindString   = value.KindString
	KindNumber   = value.KindNumber
	KindBool     = value.KindBool
	KindRecord   = value.KindRecord
	KindSequence = value.KindSequence
)

// NewRecord returns an empty record.
func NewRecord() *Record { return value.NewRecord() }

// Null returns the null value.
func Null() Value { return value.Null() }

// String returns a string value.
func String(s string) Value { return value.String(s) }

// Int returns an integral number.
func Int(i int64) Value { return value.Int(i) }

// Float returns a floating point number.
func Float(f float64) Value { return value.Float(f) }

// Bool returns a boolean value.
func Bool(b bool) Value { return value.Bool(b) }

// RecordOf wraps r in a Value.
func RecordOf(r *Record) Value { return value.RecordOf(r) }

// Sequence returns a sequence of values.
func Sequence(vs ...Value) Value { return value.Sequence(vs...) }

// RecordDocument returns a document holding a single record.
func RecordDocument(r *Record) Document { return value.RecordDocument(r) }

// SequenceDocument returns a document holding a sequence of records.
func SequenceDocument(rs ...*Record) Document { return value.SequenceDocument(rs...) }

// FromNative converts Go maps, slices and scalars into a Value.
// Map keys are sorted since Go maps are unordered.
func FromNative(in any) (Value, error) { return value.FromNative(in) }

// DocumentFromNative converts a Go map, or a slice of maps, into a Document.
func DocumentFromNative(in any) (Document, error) { return value.DocumentFromNative(in) }
