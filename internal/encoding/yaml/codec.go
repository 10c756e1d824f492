package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// ErrInvalidDocument is returned when the top-level node is neither a mapping
// nor a sequence of mappings.
var ErrInvalidDocument = errors.New("top-level node must be a mapping or a sequence of mappings")

// Codec implements the codec.Codec interface for YAML encoding.
type Codec struct{}

func (Codec) Encode(doc value.Document, opts codec.Options) ([]byte, error) {
	if opts.Sorted {
		doc = doc.SortKeys(opts.Reversed)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	root := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{toNode(doc.Value())}}
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func toNode(v value.Value) *yaml.Node {
	switch v.Kind() {
	case value.KindString:
		s, _ := v.Str()
		return stringNode(s)
	case value.KindNumber:
		if v.IsInteger() {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int64(), 10)}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(v.Float64())}
	case value.KindBool:
		b, _ := v.Boolean()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
	case value.KindRecord:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		v.Record().Each(func(k string, item value.Value) bool {
			n.Content = append(n.Content, stringNode(k), toNode(item))
			return true
		})
		return n
	case value.KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, toNode(item))
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// stringNode returns a string scalar. Strings that a YAML 1.1 reader would
// take for a boolean or a sexagesimal number are double-quoted.
func stringNode(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if isOldBool(s) || isBase60Float(s) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func isOldBool(s string) bool {
	switch s {
	case "y", "Y", "yes", "Yes", "YES",
		"n", "N", "no", "No", "NO",
		"on", "On", "ON",
		"off", "Off", "OFF":
		return true
	}
	return false
}

var base60float = regexp.MustCompile(`^[-+]?[0-9][0-9_]*(?::[0-5]?[0-9])+(?:\.[0-9_]*)?$`)

func isBase60Float(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if !(c == '+' || c == '-' || c >= '0' && c <= '9') || strings.IndexByte(s, ':') < 0 {
		return false
	}
	return base60float.MatchString(s)
}

// Decode keeps mapping order, follows aliases and applies merge keys.
// Empty input decodes to an empty record.
func (Codec) Decode(b []byte, _ codec.Options) (value.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return value.Document{}, err
	}

	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return value.RecordDocument(value.NewRecord()), nil
	}

	d := decoder{active: map[*yaml.Node]bool{}}
	v, err := d.fromNode(&root)
	if err != nil {
		return value.Document{}, err
	}

	doc, ok := value.FromValue(v)
	if !ok {
		return value.Document{}, fmt.Errorf("%w, found %s", ErrInvalidDocument, v.Kind())
	}
	return doc, nil
}

// maxNodes caps the number of nodes produced once aliases are expanded.
const maxNodes = 1 << 20

var (
	// ErrCyclicAlias is returned for an alias that refers to a node containing it.
	ErrCyclicAlias = errors.New("cyclic alias")

	// ErrTooManyNodes is returned when expanding aliases yields too many nodes.
	ErrTooManyNodes = errors.New("document is too large after expanding aliases")
)

// decoder converts a node tree. Aliases are expanded in place, so the
// collections being converted are tracked to reject cycles.
type decoder struct {
	active map[*yaml.Node]bool
	nodes  int
}

func (d *decoder) fromNode(n *yaml.Node) (value.Value, error) {
	d.nodes++
	if d.nodes > maxNodes {
		return value.Value{}, ErrTooManyNodes
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null(), nil
		}
		return d.fromNode(n.Content[0])
	case yaml.AliasNode:
		target, err := d.resolve(n)
		if err != nil {
			return value.Value{}, err
		}
		return d.fromNode(target)
	case yaml.SequenceNode:
		d.active[n] = true
		defer delete(d.active, n)

		items := make([]value.Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := d.fromNode(c)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, item)
		}
		return value.Sequence(items...), nil
	case yaml.MappingNode:
		r := value.NewRecord()
		if err := d.fillRecord(r, n); err != nil {
			return value.Value{}, err
		}
		return value.RecordOf(r), nil
	}
	return fromScalar(n)
}

// resolve returns the target of an alias, failing when the target is
// being converted already.
func (d *decoder) resolve(n *yaml.Node) (*yaml.Node, error) {
	if n.Kind != yaml.AliasNode {
		return n, nil
	}
	if n.Alias == nil || d.active[n.Alias] {
		return nil, fmt.Errorf("line %d: %w *%s", n.Line, ErrCyclicAlias, n.Value)
	}
	return n.Alias, nil
}

func (d *decoder) fillRecord(r *value.Record, n *yaml.Node) error {
	d.active[n] = true
	defer delete(d.active, n)

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		if k.ShortTag() == "!!merge" {
			if err := d.merge(r, v); err != nil {
				return err
			}
			continue
		}
		item, err := d.fromNode(v)
		if err != nil {
			return err
		}
		r.Set(k.Value, item)
	}
	return nil
}

// merge copies the keys of the merged mappings that r does not define yet.
func (d *decoder) merge(r *value.Record, n *yaml.Node) error {
	n, err := d.resolve(n)
	if err != nil {
		return err
	}
	sources := []*yaml.Node{n}
	if n.Kind == yaml.SequenceNode {
		sources = n.Content
	}
	for _, src := range sources {
		if src, err = d.resolve(src); err != nil {
			return err
		}
		if src.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}
		merged := value.NewRecord()
		if err := d.fillRecord(merged, src); err != nil {
			return err
		}
		merged.Each(func(k string, v value.Value) bool {
			if !r.Has(k) {
				r.Set(k, v)
			}
			return true
		})
	}
	return nil
}

func fromScalar(n *yaml.Node) (value.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return value.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return value.Value{}, err
		}
		return value.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return value.Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return value.Value{}, err
		}
		return value.Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return value.Value{}, err
		}
		return value.Float(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return value.String(n.Value), nil
		}
		return value.String(t.Format(time.RFC3339Nano)), nil
	}
	return value.String(n.Value), nil
}
