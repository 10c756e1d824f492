package jsonl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// ErrNotAnObject is returned when a line holds something other than a JSON object.
var ErrNotAnObject = errors.New("expecting a JSON object")

// Codec implements the codec.Codec interface for JSON Lines encoding.
// Every record is written as one compact JSON object followed by the line separator.
type Codec struct{}

func (Codec) Encode(doc value.Document, opts codec.Options) ([]byte, error) {
	var buf bytes.Buffer
	for i, r := range doc.Records() {
		if opts.Limited(i) {
			break
		}
		if opts.Sorted {
			r = r.SortKeys(opts.Reversed)
		}
		b, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("error marshaling record %d: %w", i, err)
		}
		buf.Write(b)
		buf.WriteString(opts.LineSeparator)
	}
	return buf.Bytes(), nil
}

// Decode always returns a sequence, even for a single object.
func (Codec) Decode(b []byte, opts codec.Options) (value.Document, error) {
	b = codec.SkipLines(b, opts.SkipLines, "\n")
	if opts.Comment != "" {
		b = dropComments(b, opts.Comment)
	}

	records := []*value.Record{}
	for _, chunk := range chunks(b, opts.LineSeparator) {
		dec := json.NewDecoder(bytes.NewReader(chunk))
		dec.UseNumber()
		for !opts.Limited(len(records)) {
			v, err := value.DecodeJSON(dec)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return value.Document{}, fmt.Errorf("error decoding record %d: %w", len(records)+1, err)
			}
			if v.Kind() != value.KindRecord {
				return value.Document{}, fmt.Errorf("error decoding record %d: %w, found %s", len(records)+1, ErrNotAnObject, v.Kind())
			}
			records = append(records, v.Record())
		}
	}

	return value.SequenceDocument(records...), nil
}

// chunks splits b on the line separator. A whitespace separator leaves the
// input whole so that objects spanning several lines still decode.
func chunks(b []byte, sep string) [][]byte {
	if strings.TrimSpace(sep) == "" {
		return [][]byte{b}
	}
	return bytes.Split(b, []byte(sep))
}

func dropComments(b []byte, prefix string) []byte {
	lines := bytes.Split(b, []byte("\n"))
	kept := lines[:0]
	for _, line := range lines {
		if bytes.HasPrefix(bytes.TrimSpace(line), []byte(prefix)) {
			continue
		}
		kept = append(kept, line)
	}
	return bytes.Join(kept, []byte("\n"))
}
