package json

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/jsonc"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// ErrInvalidDocument is returned when the top-level JSON value is neither an
// object nor an array of objects.
var ErrInvalidDocument = errors.New("top-level value must be an object or an array of objects")

// Codec implements the codec.Codec interface for JSON encoding.
type Codec struct{}

func (Codec) Encode(doc value.Document, opts codec.Options) ([]byte, error) {
	if opts.Sorted {
		doc = doc.SortKeys(opts.Reversed)
	}

	if opts.Pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func (Codec) Decode(b []byte, _ codec.Options) (value.Document, error) {
	v, err := value.ParseJSON(jsonc.ToJSON(b))
	if err != nil {
		return value.Document{}, err
	}
	return Document(v)
}

// Document converts a decoded JSON value into a document.
func Document(v value.Value) (value.Document, error) {
	doc, ok := value.FromValue(v)
	if !ok {
		return value.Document{}, ErrInvalidDocument
	}
	return doc, nil
}
