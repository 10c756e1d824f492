// Package golit renders documents as Go composite literals.
package golit

import (
	"math"
	"strconv"
	"strings"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

const (
	mapType   = "map[string]interface {}"
	sliceType = "[]interface {}"
)

// Encoder implements the codec.Encoder interface for Go literals.
// The output matches the %#v form of the equivalent native value, with keys
// in record order. Go literals cannot be decoded.
type Encoder struct{}

func (Encoder) Encode(doc value.Document, opts codec.Options) ([]byte, error) {
	if opts.Sorted {
		doc = doc.SortKeys(opts.Reversed)
	}

	var sb strings.Builder
	w := writer{sb: &sb, pretty: opts.Pretty}
	w.value(doc.Value(), 0)
	return []byte(sb.String()), nil
}

type writer struct {
	sb     *strings.Builder
	pretty bool
}

func (w writer) value(v value.Value, depth int) {
	switch v.Kind() {
	case value.KindNull:
		w.sb.WriteString("interface {}(nil)")
	case value.KindString:
		s, _ := v.Str()
		w.sb.WriteString(strconv.Quote(s))
	case value.KindNumber:
		w.sb.WriteString(number(v))
	case value.KindBool:
		b, _ := v.Boolean()
		w.sb.WriteString(strconv.FormatBool(b))
	case value.KindRecord:
		r := v.Record()
		w.sb.WriteString(mapType)
		w.sb.WriteByte('{')
		i := 0
		r.Each(func(k string, item value.Value) bool {
			w.sep(i, depth+1)
			w.sb.WriteString(strconv.Quote(k))
			w.sb.WriteByte(':')
			if w.pretty {
				w.sb.WriteByte(' ')
			}
			w.value(item, depth+1)
			i++
			return true
		})
		w.close(r.Len(), depth)
	case value.KindSequence:
		items := v.Items()
		w.sb.WriteString(sliceType)
		w.sb.WriteByte('{')
		for i, item := range items {
			w.sep(i, depth+1)
			w.value(item, depth+1)
		}
		w.close(len(items), depth)
	}
}

func (w writer) sep(i, depth int) {
	if w.pretty {
		if i > 0 {
			w.sb.WriteByte(',')
		}
		w.sb.WriteByte('\n')
		w.sb.WriteString(strings.Repeat("\t", depth))
		return
	}
	if i > 0 {
		w.sb.WriteString(", ")
	}
}

func (w writer) close(n, depth int) {
	if w.pretty && n > 0 {
		w.sb.WriteString(",\n")
		w.sb.WriteString(strings.Repeat("\t", depth))
	}
	w.sb.WriteByte('}')
}

func number(v value.Value) string {
	if v.IsInteger() {
		return strconv.FormatInt(v.Int64(), 10)
	}
	f := v.Float64()
	switch {
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
