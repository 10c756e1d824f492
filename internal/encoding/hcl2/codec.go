// Package hcl2 implements the HCL native syntax.
package hcl2

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// SequenceKey is the block type each record of a sequence is written as.
const SequenceKey = "item"

var (
	// ErrInvalidIdentifier is returned for keys that are not valid HCL identifiers.
	ErrInvalidIdentifier = errors.New("not a valid HCL identifier")

	// ErrNonFiniteNumber is returned for NaN and infinite numbers.
	ErrNonFiniteNumber = errors.New("HCL numbers must be finite")
)

// Codec implements the codec.Codec interface for HCL native syntax.
type Codec struct{}

// Encode writes scalars and lists as attributes, records as blocks and
// sequences of two or more records as repeated blocks.
func (Codec) Encode(doc value.Document, opts codec.Options) ([]byte, error) {
	if opts.Sorted {
		doc = doc.SortKeys(opts.Reversed)
	}

	f := hclwrite.NewEmptyFile()
	if doc.IsSequence() {
		for _, r := range doc.Records() {
			if err := writeBody(f.Body().AppendNewBlock(SequenceKey, nil).Body(), r); err != nil {
				return nil, err
			}
		}
	} else if err := writeBody(f.Body(), doc.Record()); err != nil {
		return nil, err
	}

	if opts.Pretty {
		return hclwrite.Format(f.Bytes()), nil
	}
	return f.Bytes(), nil
}

func writeBody(body *hclwrite.Body, r *value.Record) error {
	var err error
	r.Each(func(k string, v value.Value) bool {
		if !hclsyntax.ValidIdentifier(k) {
			err = fmt.Errorf("%w: %q", ErrInvalidIdentifier, k)
			return false
		}

		switch {
		case v.Kind() == value.KindRecord:
			err = writeBody(body.AppendNewBlock(k, nil).Body(), v.Record())
		case isBlockList(v):
			for _, item := range v.Items() {
				if err = writeBody(body.AppendNewBlock(k, nil).Body(), item.Record()); err != nil {
					break
				}
			}
		default:
			var cv cty.Value
			if cv, err = toCty(v); err == nil {
				body.SetAttributeValue(k, cv)
			}
		}
		if err != nil {
			err = fmt.Errorf("%s: %w", k, err)
		}
		return err == nil
	})
	return err
}

// isBlockList reports whether v is written as repeated blocks. A single
// block reads back as a record, so one-element lists stay attributes.
func isBlockList(v value.Value) bool {
	items := v.Items()
	if len(items) < 2 {
		return false
	}
	for _, item := range items {
		if item.Kind() != value.KindRecord {
			return false
		}
	}
	return true
}

func toCty(v value.Value) (cty.Value, error) {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.Str()
		return cty.StringVal(s), nil
	case value.KindNumber:
		if v.IsInteger() {
			return cty.NumberIntVal(v.Int64()), nil
		}
		f := v.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return cty.NilVal, ErrNonFiniteNumber
		}
		return cty.NumberFloatVal(f), nil
	case value.KindBool:
		b, _ := v.Boolean()
		return cty.BoolVal(b), nil
	case value.KindRecord:
		attrs := make(map[string]cty.Value, v.Record().Len())
		var err error
		v.Record().Each(func(k string, item value.Value) bool {
			attrs[k], err = toCty(item)
			return err == nil
		})
		if err != nil {
			return cty.NilVal, err
		}
		return cty.ObjectVal(attrs), nil
	case value.KindSequence:
		items := make([]cty.Value, 0, len(v.Items()))
		for _, item := range v.Items() {
			cv, err := toCty(item)
			if err != nil {
				return cty.NilVal, err
			}
			items = append(items, cv)
		}
		return cty.TupleVal(items), nil
	}
	return cty.NullVal(cty.DynamicPseudoType), nil
}

// Decode reads attributes and blocks in source order. Labels nest as
// records; a block type that repeats becomes a sequence.
func (Codec) Decode(b []byte, _ codec.Options) (value.Document, error) {
	f, diags := hclsyntax.ParseConfig(b, "input.hcl", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return value.Document{}, diags
	}

	body, ok := f.Body.(*hclsyntax.Body)
	if !ok {
		return value.Document{}, fmt.Errorf("unexpected body type %T", f.Body)
	}

	r, err := fromBody(body)
	if err != nil {
		return value.Document{}, err
	}
	return value.RecordDocument(r), nil
}

func fromBody(body *hclsyntax.Body) (*value.Record, error) {
	type item struct {
		start int
		attr  *hclsyntax.Attribute
		block *hclsyntax.Block
	}

	items := make([]item, 0, len(body.Attributes)+len(body.Blocks))
	for _, attr := range body.Attributes {
		items = append(items, item{start: attr.SrcRange.Start.Byte, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, item{start: block.TypeRange.Start.Byte, block: block})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].start < items[j].start })

	r := value.NewRecord()
	blocks := map[string]int{}
	for _, it := range items {
		if it.attr != nil {
			v, err := fromExpr(it.attr.Expr)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", it.attr.Name, err)
			}
			r.Set(it.attr.Name, v)
			continue
		}

		inner, err := fromBody(it.block.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", it.block.Type, err)
		}
		addBlock(r, blocks, it.block.Type, it.block.Labels, value.RecordOf(inner))
	}
	return r, nil
}

func addBlock(r *value.Record, blocks map[string]int, typ string, labels []string, body value.Value) {
	defer func() { blocks[typ]++ }()

	existing, ok := r.Get(typ)
	if !ok || blocks[typ] == 0 {
		r.Set(typ, nest(labels, body))
		return
	}

	if len(labels) > 0 && existing.Kind() == value.KindRecord && mergeLabels(existing.Record(), labels, body) {
		return
	}

	var seq []value.Value
	if blocks[typ] == 1 || existing.Kind() != value.KindSequence {
		seq = []value.Value{existing}
	} else {
		seq = append(seq, existing.Items()...)
	}
	r.Set(typ, value.Sequence(append(seq, nest(labels, body))...))
}

func nest(labels []string, body value.Value) value.Value {
	for i := len(labels) - 1; i >= 0; i-- {
		body = value.RecordOf(value.NewRecord().Set(labels[i], body))
	}
	return body
}

// mergeLabels adds body under labels in dst. It fails when every label is
// already present.
func mergeLabels(dst *value.Record, labels []string, body value.Value) bool {
	if len(labels) == 0 {
		return false
	}
	cur, ok := dst.Get(labels[0])
	if !ok {
		dst.Set(labels[0], nest(labels[1:], body))
		return true
	}
	if cur.Kind() != value.KindRecord {
		return false
	}
	return mergeLabels(cur.Record(), labels[1:], body)
}

// fromExpr keeps the key order of object constructors, which cty values lose.
func fromExpr(expr hclsyntax.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *hclsyntax.ObjectConsExpr:
		r := value.NewRecord()
		for _, item := range e.Items {
			kv, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() {
				return value.Value{}, diags
			}
			if kv.IsNull() || !kv.IsKnown() || kv.Type() != cty.String {
				return value.Value{}, fmt.Errorf("object keys must be strings")
			}
			v, err := fromExpr(item.ValueExpr)
			if err != nil {
				return value.Value{}, err
			}
			r.Set(kv.AsString(), v)
		}
		return value.RecordOf(r), nil
	case *hclsyntax.TupleConsExpr:
		items := make([]value.Value, 0, len(e.Exprs))
		for _, ie := range e.Exprs {
			v, err := fromExpr(ie)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.Sequence(items...), nil
	}

	cv, diags := expr.Value(nil)
	if diags.HasErrors() {
		return value.Value{}, diags
	}
	return fromCty(cv)
}

func fromCty(v cty.Value) (value.Value, error) {
	if v.IsNull() || !v.IsKnown() {
		return value.Null(), nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return value.String(v.AsString()), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return value.Int(i), nil
			}
		}
		f, _ := bf.Float64()
		return value.Float(f), nil
	case ty == cty.Bool:
		return value.Bool(v.True()), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		items := make([]value.Value, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			item, err := fromCty(ev)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, item)
		}
		return value.Sequence(items...), nil
	case ty.IsObjectType() || ty.IsMapType():
		r := value.NewRecord()
		it := v.ElementIterator()
		for it.Next() {
			k, ev := it.Element()
			item, err := fromCty(ev)
			if err != nil {
				return value.Value{}, fmt.Errorf("in attribute '%s': %w", k.AsString(), err)
			}
			r.Set(k.AsString(), item)
		}
		return value.RecordOf(r), nil
	}
	return value.Value{}, fmt.Errorf("unsupported cty type: %s", ty.FriendlyName())
}
