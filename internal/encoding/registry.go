package encoding

import (
	"github.com/gssio/gss/internal/encoding/bson"
	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/encoding/golit"
	"github.com/gssio/gss/internal/encoding/hcl"
	"github.com/gssio/gss/internal/encoding/hcl2"
	"github.com/gssio/gss/internal/encoding/json"
	"github.com/gssio/gss/internal/encoding/jsonl"
	"github.com/gssio/gss/internal/encoding/properties"
	"github.com/gssio/gss/internal/encoding/sv"
	"github.com/gssio/gss/internal/encoding/tags"
	"github.com/gssio/gss/internal/encoding/toml"
	"github.com/gssio/gss/internal/encoding/yaml"
	"github.com/gssio/gss/internal/value"
)

type encodingError string

func (e encodingError) Error() string {
	return string(e)
}

const (
	// ErrCodecNotFound is returned when there is no codec registered for a format.
	ErrCodecNotFound = encodingError("codec not found for this format")

	// ErrDecoderNotFound is returned when a format can only be encoded.
	ErrDecoderNotFound = encodingError("decoder not found for this format")
)

// Capabilities describe what a format supports.
type Capabilities struct {
	Table      bool // rows under a shared header
	LineFramed bool // one record per line, terminated by the line separator
	Pretty     bool // has a multi-line form
	Decode     bool
}

// Format is a registered format.
type Format struct {
	Name string
	Capabilities

	Encoder codec.Encoder
	Decoder codec.Decoder // nil for encode-only formats
}

// supportedFormats lists every format in the order they are reported.
var supportedFormats = []Format{
	{Name: "bson", Encoder: bson.Codec{}, Decoder: bson.Codec{}},
	{Name: "csv", Capabilities: Capabilities{Table: true}, Encoder: sv.CSV(), Decoder: sv.CSV()},
	{Name: "go", Capabilities: Capabilities{Pretty: true}, Encoder: golit.Encoder{}},
	{Name: "json", Capabilities: Capabilities{Pretty: true}, Encoder: json.Codec{}, Decoder: json.Codec{}},
	{Name: "jsonl", Capabilities: Capabilities{LineFramed: true}, Encoder: jsonl.Codec{}, Decoder: jsonl.Codec{}},
	{Name: "properties", Capabilities: Capabilities{LineFramed: true}, Encoder: properties.Codec{}, Decoder: properties.Codec{}},
	{Name: "tags", Capabilities: Capabilities{LineFramed: true}, Encoder: tags.Codec{}, Decoder: tags.Codec{}},
	{Name: "toml", Encoder: toml.Codec{}, Decoder: toml.Codec{}},
	{Name: "tsv", Capabilities: Capabilities{Table: true}, Encoder: sv.TSV(), Decoder: sv.TSV()},
	{Name: "hcl", Encoder: hcl.Codec{}, Decoder: hcl.Codec{}},
	{Name: "hcl2", Capabilities: Capabilities{Pretty: true}, Encoder: hcl2.Codec{}, Decoder: hcl2.Codec{}},
	{Name: "yaml", Encoder: yaml.Codec{}, Decoder: yaml.Codec{}},
}

// CodecRegistry resolves format names to codecs. The set of formats is
// closed and a registry never changes after construction, so it is safe for
// concurrent use.
type CodecRegistry struct {
	formats map[string]Format
	names   []string
}

// NewCodecRegistry returns a registry holding every supported format.
func NewCodecRegistry() *CodecRegistry {
	r := &CodecRegistry{
		formats: make(map[string]Format, len(supportedFormats)),
		names:   make([]string, 0, len(supportedFormats)),
	}
	for _, f := range supportedFormats {
		f.Decode = f.Decoder != nil
		r.formats[f.Name] = f
		r.names = append(r.names, f.Name)
	}
	return r
}

// Formats returns the registered format names in their stable order.
func (e *CodecRegistry) Formats() []string {
	names := make([]string, len(e.names))
	copy(names, e.names)
	return names
}

// Lookup returns the format registered under name. Names are case-sensitive.
func (e *CodecRegistry) Lookup(name string) (Format, error) {
	f, ok := e.formats[name]
	if !ok {
		return Format{}, ErrCodecNotFound
	}
	return f, nil
}

// Encode encodes doc with the codec registered under format.
func (e *CodecRegistry) Encode(format string, doc value.Document, opts codec.Options) ([]byte, error) {
	f, err := e.Lookup(format)
	if err != nil {
		return nil, err
	}
	return f.Encoder.Encode(doc, opts)
}

// Decode decodes b with the codec registered under format. Encode-only
// formats fail with ErrDecoderNotFound.
func (e *CodecRegistry) Decode(format string, b []byte, opts codec.Options) (value.Document, error) {
	f, err := e.Lookup(format)
	if err != nil {
		return value.Document{}, err
	}
	if f.Decoder == nil {
		return value.Document{}, ErrDecoderNotFound
	}
	return f.Decoder.Decode(b, opts)
}
