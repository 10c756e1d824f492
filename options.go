package gss

import (
	"sort"

	"github.com/mitchellh/mapstructure"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/gssio/gss/internal/encoding"
	"github.com/gssio/gss/internal/encoding/codec"
)

// Default option values.
const (
	DefaultLineSeparator     = "\n"
	DefaultKeyValueSeparator = "="
	NoLimit                  = codec.NoLimit
)

// Option configures a single Serialize, Deserialize or Convert call.
type Option interface {
	apply(s *settings)
}

type optionFunc func(s *settings)

func (fn optionFunc) apply(s *settings) {
	fn(s)
}

type settings struct {
	opts   codec.Options
	logger *jww.Notepad
	err    error
}

func newSettings() *settings {
	return &settings{
		opts: codec.Options{
			LineSeparator:     DefaultLineSeparator,
			KeyValueSeparator: DefaultKeyValueSeparator,
			Limit:             NoLimit,
		},
		logger: defaultLogger,
	}
}

// Sorted sorts record keys lexicographically before encoding.
func Sorted(sorted bool) Option {
	return optionFunc(func(s *settings) { s.opts.Sorted = sorted })
}

// Reversed reverses the sorted key order. It has no effect without Sorted.
func Reversed(reversed bool) Option {
	return optionFunc(func(s *settings) { s.opts.Reversed = reversed })
}

// ExpandHeader makes the header of table formats the union of every
// record's keys. Missing cells are written empty.
func ExpandHeader(expand bool) Option {
	return optionFunc(func(s *settings) { s.opts.ExpandHeader = expand })
}

// Pretty selects the multi-line form of formats that have one.
func Pretty(pretty bool) Option {
	return optionFunc(func(s *settings) { s.opts.Pretty = pretty })
}

// LineSeparator sets the record terminator of line-framed formats.
func LineSeparator(sep string) Option {
	return optionFunc(func(s *settings) { s.opts.LineSeparator = sep })
}

// KeyValueSeparator sets the separator between a key and its value in
// tags and properties.
func KeyValueSeparator(sep string) Option {
	return optionFunc(func(s *settings) { s.opts.KeyValueSeparator = sep })
}

// Header sets the columns of csv and tsv, or the keys written by tags.
// When decoding csv or tsv the first line is then read as data.
func Header(header ...string) Option {
	return optionFunc(func(s *settings) { s.opts.Header = header })
}

// Limit caps the number of records read or written. A negative limit
// means no limit.
func Limit(limit int) Option {
	return optionFunc(func(s *settings) { s.opts.Limit = limit })
}

// Comment sets the prefix of lines skipped while decoding.
func Comment(prefix string) Option {
	return optionFunc(func(s *settings) { s.opts.Comment = prefix })
}

// LazyQuotes relaxes quote handling when decoding csv.
func LazyQuotes(lazy bool) Option {
	return optionFunc(func(s *settings) { s.opts.LazyQuotes = lazy })
}

// SkipLines drops the first n lines of csv, tsv, jsonl and tags input
// before anything else is read.
func SkipLines(n int) Option {
	return optionFunc(func(s *settings) { s.opts.SkipLines = n })
}

// WithMap applies an untyped option bag, as produced by binding layers.
// Values are converted weakly: 1, "1" and "true" all enable a boolean.
// Unknown keys are ignored.
func WithMap(m map[string]any) Option {
	return optionFunc(func(s *settings) {
		if s.err != nil {
			return
		}
		s.err = decodeOptionMap(m, &s.opts)
	})
}

func decodeOptionMap(m map[string]any, opts *codec.Options) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if m[k] == nil {
			continue
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
			WeaklyTypedInput: true,
			Result:           opts,
		})
		if err != nil {
			return err
		}

		if err := decoder.Decode(map[string]any{k: m[k]}); err != nil {
			return &InvalidOptionError{Key: k, Value: m[k], err: err}
		}
	}
	return nil
}

type direction int

const (
	encode direction = iota
	decode
)

// resolveOptions merges opts over the defaults and checks them against the
// format's capabilities.
func resolveOptions(registry *encoding.CodecRegistry, format string, dir direction, opts []Option) (encoding.Format, *settings, error) {
	s := newSettings()
	for _, opt := range opts {
		if opt != nil {
			opt.apply(s)
		}
	}

	f, err := registry.Lookup(format)
	if err != nil {
		return encoding.Format{}, s, UnsupportedFormatError(format)
	}

	if s.err != nil {
		return f, s, s.err
	}

	if s.opts.Limit < 0 {
		s.opts.Limit = NoLimit
	}

	switch {
	case dir == decode && !f.Decode:
		return f, s, &UnsupportedOptionCombinationError{Format: format, Reason: "format can only be encoded"}
	case f.LineFramed && s.opts.LineSeparator == "":
		return f, s, &UnsupportedOptionCombinationError{Format: format, Reason: "line separator must not be empty"}
	case format == "tags" && s.opts.KeyValueSeparator == "":
		return f, s, &UnsupportedOptionCombinationError{Format: format, Reason: "key-value separator must not be empty"}
	}

	return f, s, nil
}
