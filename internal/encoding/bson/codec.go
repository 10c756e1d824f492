// Package bson implements binary JSON documents.
package bson

import (
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// Codec implements the codec.Codec interface for BSON encoding.
// The top level of a BSON document is always a single record.
type Codec struct{}

func (Codec) Encode(doc value.Document, opts codec.Options) ([]byte, error) {
	if err := codec.RequireRecord(doc); err != nil {
		return nil, err
	}

	r := doc.Record()
	if opts.Sorted {
		r = r.SortKeys(opts.Reversed)
	}

	return bson.Marshal(toD(r))
}

func toD(r *value.Record) bson.D {
	d := make(bson.D, 0, r.Len())
	r.Each(func(k string, v value.Value) bool {
		d = append(d, bson.E{Key: k, Value: toBSON(v)})
		return true
	})
	return d
}

func toBSON(v value.Value) interface{} {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.Str()
		return s
	case value.KindNumber:
		if v.IsInteger() {
			return v.Int64()
		}
		return v.Float64()
	case value.KindBool:
		b, _ := v.Boolean()
		return b
	case value.KindRecord:
		return toD(v.Record())
	case value.KindSequence:
		a := make(bson.A, 0, len(v.Items()))
		for _, item := range v.Items() {
			a = append(a, toBSON(item))
		}
		return a
	}
	return nil
}

func (Codec) Decode(b []byte, _ codec.Options) (value.Document, error) {
	var d bson.D
	if err := bson.Unmarshal(b, &d); err != nil {
		return value.Document{}, err
	}

	r, err := fromD(d)
	if err != nil {
		return value.Document{}, err
	}
	return value.RecordDocument(r), nil
}

func fromD(d primitive.D) (*value.Record, error) {
	r := value.NewRecord()
	for _, e := range d {
		v, err := fromBSON(e.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Key, err)
		}
		r.Set(e.Key, v)
	}
	return r, nil
}

func fromBSON(in interface{}) (value.Value, error) {
	switch x := in.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return value.Null(), nil
	case string:
		return value.String(x), nil
	case bool:
		return value.Bool(x), nil
	case int32:
		return value.Int(int64(x)), nil
	case int64:
		return value.Int(x), nil
	case float64:
		return value.Float(x), nil
	case primitive.D:
		r, err := fromD(x)
		if err != nil {
			return value.Value{}, err
		}
		return value.RecordOf(r), nil
	case primitive.M:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d := make(primitive.D, 0, len(x))
		for _, k := range keys {
			d = append(d, primitive.E{Key: k, Value: x[k]})
		}
		return fromBSON(d)
	case primitive.A:
		items := make([]value.Value, 0, len(x))
		for _, item := range x {
			v, err := fromBSON(item)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.Sequence(items...), nil
	case primitive.DateTime:
		return value.String(x.Time().UTC().Format(time.RFC3339Nano)), nil
	case primitive.Timestamp:
		return value.String(time.Unix(int64(x.T), 0).UTC().Format(time.RFC3339)), nil
	case primitive.ObjectID:
		return value.String(x.Hex()), nil
	case primitive.Decimal128:
		return value.String(x.String()), nil
	case primitive.Symbol:
		return value.String(string(x)), nil
	case primitive.Binary:
		return value.Value{}, fmt.Errorf("unsupported BSON binary subtype %#x", x.Subtype)
	}
	return value.Value{}, fmt.Errorf("unsupported BSON value of type %T", in)
}
