// Package value implements the in-memory data model shared by every codec:
// scalars, ordered records and sequences.
package value

import (
	"math"
	"strconv"
)

// Kind identifies which member of the Value union is set.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindRecord
	KindSequence
)

var kindNames = [...]string{
	KindNull:     "null",
	KindString:   "string",
	KindNumber:   "number",
	KindBool:     "bool",
	KindRecord:   "record",
	KindSequence: "sequence",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a tagged union over null, string, number, bool, record and sequence.
// The zero Value is null.
type Value struct {
	kind    Kind
	str     string
	integer bool
	i       int64
	f       float64
	b       bool
	rec     *Record
	seq     []Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integral number.
func Int(i int64) Value { return Value{kind: KindNumber, integer: true, i: i, f: float64(i)} }

// Float returns a floating point number.
func Float(f float64) Value { return Value{kind: KindNumber, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// RecordOf wraps r. A nil record is stored as an empty one.
func RecordOf(r *Record) Value {
	if r == nil {
		r = NewRecord()
	}
	return Value{kind: KindRecord, rec: r}
}

// Sequence returns a sequence holding vs.
func Sequence(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{kind: KindSequence, seq: vs}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// IsInteger reports whether v is a number stored as an int64.
func (v Value) IsInteger() bool { return v.kind == KindNumber && v.integer }

// Int64 returns the number as an int64, truncating floats.
func (v Value) Int64() int64 {
	if v.integer {
		return v.i
	}
	return int64(v.f)
}

// Float64 returns the number as a float64.
func (v Value) Float64() float64 {
	if v.integer {
		return float64(v.i)
	}
	return v.f
}

// Boolean returns the bool payload and whether v is a bool.
func (v Value) Boolean() (bool, bool) { return v.b, v.kind == KindBool }

// Record returns the record payload, or nil if v is not a record.
func (v Value) Record() *Record {
	if v.kind != KindRecord {
		return nil
	}
	return v.rec
}

// Items returns the elements of a sequence, or nil if v is not a sequence.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// NumberString renders a number the way JSON would: integers in base 10 and
// floats in their shortest representation.
func (v Value) NumberString() string {
	if v.integer {
		return strconv.FormatInt(v.i, 10)
	}
	if math.IsInf(v.f, 1) {
		return "+Inf"
	}
	if math.IsInf(v.f, -1) {
		return "-Inf"
	}
	return strconv.FormatFloat(v.f, 'g', -1, 64)
}

// Equal reports whether v and o hold the same data. Records compare key order.
// Integers and floats with the same numeric value are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindNumber:
		if v.integer && o.integer {
			return v.i == o.i
		}
		return v.Float64() == o.Float64()
	case KindBool:
		return v.b == o.b
	case KindRecord:
		return v.rec.Equal(o.rec)
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// SortKeys returns a deep copy of v with every nested record's keys sorted.
func (v Value) SortKeys(reversed bool) Value {
	switch v.kind {
	case KindRecord:
		return RecordOf(v.rec.SortKeys(reversed))
	case KindSequence:
		out := make([]Value, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.SortKeys(reversed)
		}
		return Sequence(out...)
	}
	return v
}
