package toml

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// ErrNullInArray is returned for arrays holding a null, which TOML cannot express.
var ErrNullInArray = errors.New("toml: null values in arrays are not supported")

// Codec implements the codec.Codec interface for TOML encoding.
type Codec struct{}

// Encode writes the record keys in order. Scalars come first within a table,
// followed by nested tables and arrays of tables. Null values are omitted.
func (Codec) Encode(doc value.Document, opts codec.Options) ([]byte, error) {
	if doc.IsSequence() {
		err := &codec.InvalidShapeError{
			Type:     doc.NativeType(),
			Expected: codec.RecordKinds,
			Message:  "toml: top-level values must be Go maps or structs",
		}
		return nil, fmt.Errorf("error marshaling TOML bytes: %w", err)
	}

	r := doc.Record()
	if opts.Sorted {
		r = r.SortKeys(opts.Reversed)
	}

	var buf bytes.Buffer
	if err := writeTable(&buf, r, nil); err != nil {
		return nil, fmt.Errorf("error marshaling TOML bytes: %w", err)
	}

	return buf.Bytes(), nil
}

func writeTable(buf *bytes.Buffer, r *value.Record, path []string) error {
	var tables, arrays []string

	for _, k := range r.Keys(false, false) {
		v, _ := r.Get(k)
		switch {
		case v.IsNull():
		case v.Kind() == value.KindRecord:
			tables = append(tables, k)
		case isTableArray(v):
			arrays = append(arrays, k)
		default:
			if err := writeKeyValue(buf, k, v); err != nil {
				return err
			}
		}
	}

	for _, k := range tables {
		v, _ := r.Get(k)
		sub := append(path[:len(path):len(path)], k)
		writeHeader(buf, "["+joinKeys(sub)+"]")
		if err := writeTable(buf, v.Record(), sub); err != nil {
			return err
		}
	}

	for _, k := range arrays {
		v, _ := r.Get(k)
		sub := append(path[:len(path):len(path)], k)
		for _, item := range v.Items() {
			writeHeader(buf, "[["+joinKeys(sub)+"]]")
			if err := writeTable(buf, item.Record(), sub); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeHeader(buf *bytes.Buffer, header string) {
	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString(header)
	buf.WriteByte('\n')
}

// writeKeyValue lets go-toml render a single key/value pair so that value
// formatting and key quoting follow the library.
func writeKeyValue(buf *bytes.Buffer, k string, v value.Value) error {
	if hasNullItem(v) {
		return fmt.Errorf("key %q: %w", k, ErrNullInArray)
	}

	t, err := toml.TreeFromMap(map[string]interface{}{k: v.Native()})
	if err != nil {
		return err
	}

	s, err := t.ToTomlString()
	if err != nil {
		return err
	}

	buf.WriteString(s)
	return nil
}

func isTableArray(v value.Value) bool {
	items := v.Items()
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if item.Kind() != value.KindRecord {
			return false
		}
	}
	return true
}

func hasNullItem(v value.Value) bool {
	for _, item := range v.Items() {
		if item.IsNull() || hasNullItem(item) {
			return true
		}
	}
	return false
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func joinKeys(path []string) string {
	parts := make([]string, len(path))
	for i, k := range path {
		if bareKey.MatchString(k) {
			parts[i] = k
		} else {
			parts[i] = strconv.Quote(k)
		}
	}
	return strings.Join(parts, ".")
}

// Decode returns the document with keys in source order.
func (Codec) Decode(b []byte, _ codec.Options) (value.Document, error) {
	tree, err := toml.LoadBytes(b)
	if err != nil {
		return value.Document{}, err
	}

	r, err := fromTree(tree)
	if err != nil {
		return value.Document{}, err
	}

	return value.RecordDocument(r), nil
}

func fromTree(t *toml.Tree) (*value.Record, error) {
	keys := t.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		pi, pj := t.GetPositionPath([]string{keys[i]}), t.GetPositionPath([]string{keys[j]})
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		if pi.Col != pj.Col {
			return pi.Col < pj.Col
		}
		return keys[i] < keys[j]
	})

	r := value.NewRecord()
	for _, k := range keys {
		v, err := fromNative(t.GetPath([]string{k}))
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		r.Set(k, v)
	}
	return r, nil
}

func fromNative(v interface{}) (value.Value, error) {
	switch v := v.(type) {
	case *toml.Tree:
		r, err := fromTree(v)
		if err != nil {
			return value.Value{}, err
		}
		return value.RecordOf(r), nil
	case []*toml.Tree:
		items := make([]value.Value, 0, len(v))
		for _, t := range v {
			r, err := fromTree(t)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, value.RecordOf(r))
		}
		return value.Sequence(items...), nil
	case []interface{}:
		items := make([]value.Value, 0, len(v))
		for _, item := range v {
			iv, err := fromNative(item)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, iv)
		}
		return value.Sequence(items...), nil
	case time.Time:
		return value.String(v.Format(time.RFC3339Nano)), nil
	case fmt.Stringer:
		// local dates and times
		return value.String(v.String()), nil
	}
	return value.FromNative(v)
}
