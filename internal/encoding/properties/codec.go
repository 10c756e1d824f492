// Package properties implements the Java properties format.
package properties

import (
	"fmt"
	"strings"

	"github.com/magiconair/properties"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// Codec implements the codec.Codec interface for Java properties encoding.
type Codec struct {
	KeyDelimiter string
}

// Encode writes one key/value pair per line. Lines are joined by the line
// separator without a trailing one.
func (c Codec) Encode(doc value.Document, opts codec.Options) ([]byte, error) {
	if err := codec.RequireRecord(doc); err != nil {
		return nil, fmt.Errorf("error writing properties: %w", err)
	}

	entries := flatten(nil, map[string]struct{}{}, doc.Record(), "", c.keyDelimiter())
	if opts.Sorted {
		sortEntries(entries, opts.Reversed)
	}

	sep := opts.KeyValueSeparator
	if sep == "" {
		sep = "="
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		s, err := codec.Text(e.val)
		if err != nil {
			return nil, fmt.Errorf("error writing key %q: %w", e.key, err)
		}
		lines = append(lines, escapeKey(e.key)+sep+escapeValue(s))
	}

	return []byte(strings.Join(lines, opts.LineSeparator)), nil
}

// Decode returns a flat record of strings in file order.
// Property references like ${key} are not expanded.
func (c Codec) Decode(b []byte, _ codec.Options) (value.Document, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadBytes(b)
	if err != nil {
		return value.Document{}, err
	}

	r := value.NewRecord()
	for _, key := range p.Keys() {
		// ignore existence check: we know it's there
		v, _ := p.Get(key)
		r.Set(key, value.String(v))
	}

	return value.RecordDocument(r), nil
}

func (c Codec) keyDelimiter() string {
	if c.KeyDelimiter == "" {
		return "."
	}

	return c.KeyDelimiter
}

var (
	keyEscaper = strings.NewReplacer(
		`\`, `\\`,
		" ", `\ `,
		"=", `\=`,
		":", `\:`,
		"#", `\#`,
		"!", `\!`,
		"\t", `\t`,
		"\n", `\n`,
		"\r", `\r`,
		"\f", `\f`,
	)
	valueEscaper = strings.NewReplacer(
		`\`, `\\`,
		"\t", `\t`,
		"\n", `\n`,
		"\r", `\r`,
		"\f", `\f`,
	)
)

func escapeKey(s string) string {
	return keyEscaper.Replace(s)
}

// escapeValue escapes a value. Only a leading space needs escaping since the
// reader strips whitespace after the separator.
func escapeValue(s string) string {
	s = valueEscaper.Replace(s)
	if strings.HasPrefix(s, " ") {
		s = `\` + s
	}
	return s
}
