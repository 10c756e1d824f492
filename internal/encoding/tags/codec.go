// Package tags implements the tags format: space-separated key=value tokens,
// one record per line.
package tags

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

var (
	// ErrMissingSeparator is returned when a token has no key-value separator.
	ErrMissingSeparator = errors.New("token is missing the key-value separator")

	// ErrUnterminatedQuote is returned when a line ends inside a quoted string.
	ErrUnterminatedQuote = errors.New("unterminated quoted string")
)

// Codec implements the codec.Codec interface for tags encoding.
type Codec struct{}

// Encode writes a single record as one line with no terminator and a sequence
// as one terminated line per record.
func (Codec) Encode(doc value.Document, opts codec.Options) ([]byte, error) {
	if !doc.IsSequence() {
		line, err := marshal(doc.Record(), opts)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	var sb strings.Builder
	for i, r := range doc.Records() {
		if opts.Limited(i) {
			break
		}
		line, err := marshal(r, opts)
		if err != nil {
			return nil, fmt.Errorf("error writing record %d: %w", i+1, err)
		}
		sb.WriteString(line)
		sb.WriteString(opts.LineSeparator)
	}
	return []byte(sb.String()), nil
}

// keys returns the keys written for r. An explicit header lists the keys even
// when r lacks them; ExpandHeader appends the keys of r it does not name.
func keys(r *value.Record, opts codec.Options) []string {
	if len(opts.Header) == 0 {
		return opts.Keys(r)
	}

	out := make([]string, 0, len(opts.Header))
	seen := map[string]struct{}{}
	for _, k := range opts.Header {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	if opts.ExpandHeader {
		for _, k := range opts.Keys(r) {
			if _, ok := seen[k]; !ok {
				out = append(out, k)
			}
		}
	}
	return out
}

func marshal(r *value.Record, opts codec.Options) (string, error) {
	tokens := make([]string, 0, r.Len())
	for _, k := range keys(r, opts) {
		var s string
		if v, ok := r.Get(k); ok {
			var err error
			if s, err = codec.Text(v); err != nil {
				return "", fmt.Errorf("error writing tag %q: %w", k, err)
			}
		}
		tokens = append(tokens, quote(k, opts.KeyValueSeparator)+opts.KeyValueSeparator+quote(s, ""))
	}
	return strings.Join(tokens, " "), nil
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(s, sep string) string {
	s = escaper.Replace(s)
	if strings.ContainsAny(s, " \t") || (sep != "" && strings.Contains(s, sep)) {
		return `"` + s + `"`
	}
	return s
}

// Decode reads one record per non-blank, non-comment line. The result is
// always a sequence.
func (Codec) Decode(b []byte, opts codec.Options) (value.Document, error) {
	sep, size := utf8.DecodeRuneInString(opts.KeyValueSeparator)
	if size == 0 || size != len(opts.KeyValueSeparator) {
		return value.Document{}, fmt.Errorf("key-value separator must be a single character, got %q", opts.KeyValueSeparator)
	}

	lineSep := opts.LineSeparator
	if lineSep == "" {
		lineSep = "\n"
	}

	b = codec.SkipLines(b, opts.SkipLines, lineSep)

	records := []*value.Record{}
	for i, line := range strings.Split(string(b), lineSep) {
		if opts.Limited(len(records)) {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" || (opts.Comment != "" && strings.HasPrefix(line, opts.Comment)) {
			continue
		}
		r, err := unmarshal(line, sep)
		if err != nil {
			return value.Document{}, fmt.Errorf("error reading line %d: %w", i+1+max(opts.SkipLines, 0), err)
		}
		records = append(records, r)
	}

	return value.SequenceDocument(records...), nil
}

func unmarshal(line string, sep rune) (*value.Record, error) {
	r := value.NewRecord()

	var (
		buf      strings.Builder
		key      string
		hasKey   bool
		started  bool
		inQuotes bool
		escaped  bool
	)

	flush := func() error {
		if !started {
			return nil
		}
		if !hasKey {
			return fmt.Errorf("%w: %q", ErrMissingSeparator, buf.String())
		}
		r.Set(key, value.String(buf.String()))
		buf.Reset()
		key, hasKey, started = "", false, false
		return nil
	}

	for _, c := range line {
		switch {
		case escaped:
			if c == 'n' {
				c = '\n'
			}
			buf.WriteRune(c)
			escaped = false
		case c == '\\':
			escaped, started = true, true
		case c == '"':
			inQuotes, started = !inQuotes, true
		case inQuotes:
			buf.WriteRune(c)
		case c == ' ' || c == '\t':
			if err := flush(); err != nil {
				return nil, err
			}
		case c == sep && !hasKey:
			key, hasKey, started = buf.String(), true, true
			buf.Reset()
		default:
			buf.WriteRune(c)
			started = true
		}
	}

	if inQuotes {
		return nil, ErrUnterminatedQuote
	}
	if escaped {
		buf.WriteRune('\\')
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return r, nil
}
