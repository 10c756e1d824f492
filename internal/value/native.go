package value

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/spf13/cast"
)

// fromNativeFuncs converts a reflected Go value by kind.
var fromNativeFuncs = map[reflect.Kind]func(reflect.Value) (Value, error){
	reflect.String:  fromString,
	reflect.Bool:    fromBool,
	reflect.Int:     fromInt,
	reflect.Int8:    fromInt,
	reflect.Int16:   fromInt,
	reflect.Int32:   fromInt,
	reflect.Int64:   fromInt,
	reflect.Uint:    fromUint,
	reflect.Uint8:   fromUint,
	reflect.Uint16:  fromUint,
	reflect.Uint32:  fromUint,
	reflect.Uint64:  fromUint,
	reflect.Float32: fromFloat,
	reflect.Float64: fromFloat,
}

// container converters recurse through the table
func init() {
	fromNativeFuncs[reflect.Map] = fromMap
	fromNativeFuncs[reflect.Slice] = fromSlice
	fromNativeFuncs[reflect.Array] = fromSlice
}

var timeType = reflect.TypeOf(time.Time{})

// FromNative converts a Go value built from maps, slices and scalars into a
// Value. Go maps are unordered, so their keys are sorted.
func FromNative(in any) (Value, error) {
	switch x := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case *Record:
		return RecordOf(x), nil
	case Document:
		return x.Value(), nil
	}
	return fromReflect(reflect.ValueOf(in))
}

// DocumentFromNative converts a Go map, or a slice of maps, into a Document.
func DocumentFromNative(in any) (Document, error) {
	if d, ok := in.(Document); ok {
		return d, nil
	}
	v, err := FromNative(in)
	if err != nil {
		return Document{}, err
	}
	d, ok := FromValue(v)
	if !ok {
		return Document{}, fmt.Errorf("cannot use %T as a document: expecting a map or a slice of maps", in)
	}
	return d, nil
}

func fromReflect(rv reflect.Value) (Value, error) {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null(), nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return Null(), nil
	}
	if rv.Type() == timeType {
		return String(rv.Interface().(time.Time).Format(time.RFC3339Nano)), nil
	}
	if f, ok := fromNativeFuncs[rv.Kind()]; ok {
		return f(rv)
	}
	return Value{}, fmt.Errorf("no conversion for type %s", rv.Type())
}

func fromString(rv reflect.Value) (Value, error) { return String(rv.String()), nil }

func fromBool(rv reflect.Value) (Value, error) { return Bool(rv.Bool()), nil }

func fromInt(rv reflect.Value) (Value, error) { return Int(rv.Int()), nil }

func fromUint(rv reflect.Value) (Value, error) {
	u := rv.Uint()
	if u > 1<<63-1 {
		return Float(float64(u)), nil
	}
	return Int(int64(u)), nil
}

func fromFloat(rv reflect.Value) (Value, error) { return Float(rv.Float()), nil }

func fromMap(rv reflect.Value) (Value, error) {
	keys := make([]string, 0, rv.Len())
	index := make(map[string]reflect.Value, rv.Len())
	for _, k := range rv.MapKeys() {
		ks, err := cast.ToStringE(k.Interface())
		if err != nil {
			return Value{}, fmt.Errorf("map key of type %s: %w", k.Type(), err)
		}
		keys = append(keys, ks)
		index[ks] = rv.MapIndex(k)
	}
	sort.Strings(keys)

	r := NewRecord()
	for _, k := range keys {
		v, err := fromReflect(index[k])
		if err != nil {
			return Value{}, fmt.Errorf("in key %q: %w", k, err)
		}
		r.Set(k, v)
	}
	return RecordOf(r), nil
}

func fromSlice(rv reflect.Value) (Value, error) {
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return Sequence(), nil
	}
	items := make([]Value, rv.Len())
	for i := range items {
		v, err := fromReflect(rv.Index(i))
		if err != nil {
			return Value{}, fmt.Errorf("at index %d: %w", i, err)
		}
		items[i] = v
	}
	return Sequence(items...), nil
}

// Native converts v into plain Go values: map[string]any, []any, string,
// int64, float64, bool and nil.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.integer {
			return v.i
		}
		return v.f
	case KindBool:
		return v.b
	case KindRecord:
		return v.rec.Native()
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Native()
		}
		return out
	}
	return nil
}

// Native converts the record into a map[string]any. Key order is lost.
func (r *Record) Native() map[string]any {
	out := make(map[string]any, r.Len())
	r.Each(func(k string, v Value) bool {
		out[k] = v.Native()
		return true
	})
	return out
}

// Native converts the document into a map[string]any or a []any of maps.
func (d Document) Native() any {
	return d.Value().Native()
}
