package codec

import (
	"github.com/gssio/gss/internal/value"
)

// NoLimit disables the limit option.
const NoLimit = -1

// Options are the effective settings passed to a codec after defaults have
// been merged in. Codecs ignore the fields they do not interpret.
type Options struct {
	Sorted            bool     `mapstructure:"sorted"`
	Reversed          bool     `mapstructure:"reversed"`
	ExpandHeader      bool     `mapstructure:"expandHeader"`
	Pretty            bool     `mapstructure:"pretty"`
	LineSeparator     string   `mapstructure:"lineSeparator"`
	KeyValueSeparator string   `mapstructure:"keyValueSeparator"`
	Header            []string `mapstructure:"header"`
	Limit             int      `mapstructure:"limit"`
	Comment           string   `mapstructure:"comment"`
	LazyQuotes        bool     `mapstructure:"lazyQuotes"`
	SkipLines         int      `mapstructure:"skipLines"`
}

// Keys returns the keys of r in the order the options ask for.
func (o Options) Keys(r *value.Record) []string {
	return r.Keys(o.Sorted, o.Reversed)
}

// Limited reports whether n items already reach the limit.
func (o Options) Limited(n int) bool {
	return o.Limit >= 0 && n >= o.Limit
}

// Encoder encodes a document into a byte representation.
type Encoder interface {
	Encode(doc value.Document, opts Options) ([]byte, error)
}

// Decoder decodes the byte representation of a document.
type Decoder interface {
	Decode(b []byte, opts Options) (value.Document, error)
}

// Codec combines Encoder and Decoder.
type Codec interface {
	Encoder
	Decoder
}
