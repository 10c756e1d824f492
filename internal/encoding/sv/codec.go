// Package sv implements the delimiter-separated table formats (csv and tsv).
package sv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// ErrDuplicateColumn is returned when a header names the same column twice.
var ErrDuplicateColumn = errors.New("duplicate column name")

// Codec implements the codec.Codec interface for a separated-values format.
type Codec struct {
	Comma rune

	// AlwaysLazyQuotes forces lenient quote handling on decode.
	// Tab-separated data rarely follows the RFC 4180 quoting rules.
	AlwaysLazyQuotes bool
}

// CSV returns the comma-separated codec.
func CSV() Codec { return Codec{Comma: ','} }

// TSV returns the tab-separated codec.
func TSV() Codec { return Codec{Comma: '\t', AlwaysLazyQuotes: true} }

func (c Codec) Encode(doc value.Document, opts codec.Options) ([]byte, error) {
	records := doc.Records()
	if opts.Limit >= 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}

	header := Header(records, opts)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = c.Comma

	if err := writeRow(w, &buf, header); err != nil {
		return nil, fmt.Errorf("error writing header: %w", err)
	}

	row := make([]string, len(header))
	for i, r := range records {
		for j, key := range header {
			v, ok := r.Get(key)
			if !ok {
				row[j] = ""
				continue
			}
			s, err := codec.Text(v)
			if err != nil {
				return nil, fmt.Errorf("error writing row %d column %q: %w", i+1, key, err)
			}
			row[j] = s
		}
		if err := writeRow(w, &buf, row); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeRow writes a row through w. A row made of one empty cell is written
// quoted, since a blank line is skipped when reading.
func writeRow(w *csv.Writer, buf *bytes.Buffer, row []string) error {
	if len(row) != 1 || row[0] != "" {
		return w.Write(row)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	buf.WriteString("\"\"\n")
	return nil
}

// Header derives the column names for records.
//
// Without an explicit header the first record's keys are used, or the union
// of every record's keys in first-seen order when ExpandHeader is set.
// An explicit header is kept as given; ExpandHeader appends the keys it does
// not list. Sorted and Reversed then order the result.
func Header(records []*value.Record, opts codec.Options) []string {
	header := make([]string, 0, len(opts.Header))
	seen := map[string]struct{}{}
	add := func(key string) {
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		header = append(header, key)
	}

	for _, key := range opts.Header {
		add(key)
	}

	switch {
	case len(opts.Header) > 0 && !opts.ExpandHeader:
	case opts.ExpandHeader:
		for _, r := range records {
			r.Each(func(key string, _ value.Value) bool {
				add(key)
				return true
			})
		}
	case len(records) > 0:
		for _, key := range records[0].Keys(false, false) {
			add(key)
		}
	}

	if opts.Sorted {
		value.SortStrings(header, opts.Reversed)
	}
	return header
}

// Decode skips opts.SkipLines raw lines before the header.
func (c Codec) Decode(b []byte, opts codec.Options) (value.Document, error) {
	r := csv.NewReader(bytes.NewReader(codec.SkipLines(b, opts.SkipLines, "\n")))
	r.Comma = c.Comma
	r.LazyQuotes = opts.LazyQuotes || c.AlwaysLazyQuotes
	r.FieldsPerRecord = -1

	if opts.Comment != "" {
		comment, size := utf8.DecodeRuneInString(opts.Comment)
		if size != len(opts.Comment) {
			return value.Document{}, fmt.Errorf("comment must be a single character, got %q", opts.Comment)
		}
		r.Comment = comment
	}

	header := opts.Header
	if len(header) == 0 {
		h, err := r.Read()
		if errors.Is(err, io.EOF) {
			return value.SequenceDocument(), nil
		}
		if err != nil {
			return value.Document{}, fmt.Errorf("error reading header: %w", err)
		}
		header = h
	}

	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		if _, ok := seen[h]; ok {
			return value.Document{}, fmt.Errorf("%w: %q", ErrDuplicateColumn, h)
		}
		seen[h] = struct{}{}
	}

	records := []*value.Record{}
	for !opts.Limited(len(records)) {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return value.Document{}, fmt.Errorf("error reading row %d: %w", len(records)+1, err)
		}
		if len(row) > len(header) {
			line, _ := r.FieldPos(0)
			return value.Document{}, fmt.Errorf("error reading row %d (line %d): %d fields, header has %d", len(records)+1, line, len(row), len(header))
		}

		rec := value.NewRecord()
		for i, cell := range row {
			rec.Set(header[i], value.String(cell))
		}
		records = append(records, rec)
	}

	return value.SequenceDocument(records...), nil
}
