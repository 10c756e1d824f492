package hcl

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/hashicorp/hcl"
	"github.com/hashicorp/hcl/hcl/ast"
	"github.com/hashicorp/hcl/hcl/printer"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// SequenceKey is the block name each record of a sequence is written under.
const SequenceKey = "item"

// Codec implements the codec.Codec interface for HCL encoding.
// TODO: add printer config to the codec?
type Codec struct{}

func (Codec) Encode(doc value.Document, opts codec.Options) ([]byte, error) {
	if opts.Sorted {
		doc = doc.SortKeys(opts.Reversed)
	}

	var v interface{} = doc
	if doc.IsSequence() {
		v = value.NewRecord().Set(SequenceKey, doc.Value())
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	// the JSON form keeps the key order through the parser and printer
	f, err := hcl.Parse(string(b))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	err = printer.Fprint(&buf, f.Node)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode returns top-level keys in source order. Nested objects follow the
// HCL 1 decoder: blocks decode to lists of records and their keys are sorted.
func (Codec) Decode(b []byte, _ codec.Options) (value.Document, error) {
	f, err := hcl.ParseBytes(b)
	if err != nil {
		return value.Document{}, err
	}

	m := map[string]interface{}{}
	if err := hcl.DecodeObject(&m, f); err != nil {
		return value.Document{}, err
	}

	r := value.NewRecord()
	for _, k := range keyOrder(f, m) {
		v, err := value.FromNative(m[k])
		if err != nil {
			return value.Document{}, err
		}
		r.Set(k, v)
	}

	return value.RecordDocument(r), nil
}

// keyOrder lists the keys of m in the order they first appear in f.
func keyOrder(f *ast.File, m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	seen := map[string]struct{}{}
	add := func(k string) {
		if _, ok := m[k]; !ok {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	if list, ok := f.Node.(*ast.ObjectList); ok {
		for _, item := range list.Items {
			if len(item.Keys) == 0 {
				continue
			}
			tok := item.Keys[0].Token
			if k, ok := tok.Value().(string); ok {
				add(k)
			} else {
				add(tok.Text)
			}
		}
	}

	var rest []string
	for k := range m {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
