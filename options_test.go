package gss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gssio/gss/internal/encoding/codec"
)

func TestResolveOptions(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		f, s, err := resolveOptions(registry, "csv", encode, nil)
		require.NoError(t, err)

		assert.Equal(t, "csv", f.Name)
		assert.Equal(t, codec.Options{
			LineSeparator:     "\n",
			KeyValueSeparator: "=",
			Limit:             NoLimit,
		}, s.opts)
		assert.Same(t, defaultLogger, s.logger)
	})

	t.Run("Options", func(t *testing.T) {
		_, s, err := resolveOptions(registry, "tags", decode, []Option{
			Sorted(true),
			Reversed(true),
			ExpandHeader(true),
			Pretty(true),
			LineSeparator("\r\n"),
			KeyValueSeparator(":"),
			Header("a", "b"),
			Limit(2),
			Comment("#"),
			LazyQuotes(true),
			nil,
		})
		require.NoError(t, err)

		assert.Equal(t, codec.Options{
			Sorted:            true,
			Reversed:          true,
			ExpandHeader:      true,
			Pretty:            true,
			LineSeparator:     "\r\n",
			KeyValueSeparator: ":",
			Header:            []string{"a", "b"},
			Limit:             2,
			Comment:           "#",
			LazyQuotes:        true,
		}, s.opts)
	})

	t.Run("NegativeLimit", func(t *testing.T) {
		_, s, err := resolveOptions(registry, "jsonl", encode, []Option{Limit(-10)})
		require.NoError(t, err)

		assert.Equal(t, NoLimit, s.opts.Limit)
	})

	t.Run("LastOptionWins", func(t *testing.T) {
		_, s, err := resolveOptions(registry, "json", encode, []Option{Pretty(true), Pretty(false)})
		require.NoError(t, err)

		assert.False(t, s.opts.Pretty)
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		_, _, err := resolveOptions(registry, "ini", encode, nil)
		require.Error(t, err)

		assert.Equal(t, UnsupportedFormatError("ini"), err)
	})

	t.Run("EncodeOnly", func(t *testing.T) {
		_, _, err := resolveOptions(registry, "go", encode, nil)
		require.NoError(t, err)

		_, _, err = resolveOptions(registry, "go", decode, nil)
		require.Error(t, err)

		var comboErr *UnsupportedOptionCombinationError
		require.ErrorAs(t, err, &comboErr)
		assert.Equal(t, "go", comboErr.Format)
	})

	t.Run("EmptyLineSeparator", func(t *testing.T) {
		for _, format := range []string{"jsonl", "properties", "tags"} {
			_, _, err := resolveOptions(registry, format, encode, []Option{LineSeparator("")})
			assert.IsType(t, &UnsupportedOptionCombinationError{}, err, format)
		}

		// irrelevant to whole-document formats
		_, _, err := resolveOptions(registry, "json", encode, []Option{LineSeparator("")})
		assert.NoError(t, err)
	})

	t.Run("EmptyKeyValueSeparator", func(t *testing.T) {
		_, _, err := resolveOptions(registry, "tags", decode, []Option{KeyValueSeparator("")})
		assert.IsType(t, &UnsupportedOptionCombinationError{}, err)

		_, _, err = resolveOptions(registry, "yaml", decode, []Option{KeyValueSeparator("")})
		assert.NoError(t, err)
	})

	t.Run("Logger", func(t *testing.T) {
		_, s, err := resolveOptions(registry, "json", encode, []Option{WithLogger(nil)})
		require.NoError(t, err)

		assert.Same(t, defaultLogger, s.logger)
	})
}

func TestWithMap(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		_, s, err := resolveOptions(registry, "csv", encode, []Option{WithMap(map[string]any{
			"sorted":       true,
			"reversed":     1,
			"expandHeader": "true",
			"pretty":       1.0,
			"header":       "a,b",
			"limit":        "3",
			"comment":      "#",
			"skipLines":    "2",
			"unknown":      struct{}{},
			"lazyQuotes":   nil,
		})})
		require.NoError(t, err)

		assert.True(t, s.opts.Sorted)
		assert.True(t, s.opts.Reversed)
		assert.True(t, s.opts.ExpandHeader)
		assert.True(t, s.opts.Pretty)
		assert.False(t, s.opts.LazyQuotes)
		assert.Equal(t, []string{"a", "b"}, s.opts.Header)
		assert.Equal(t, 3, s.opts.Limit)
		assert.Equal(t, "#", s.opts.Comment)
		assert.Equal(t, 2, s.opts.SkipLines)
		assert.Equal(t, "\n", s.opts.LineSeparator)
	})

	t.Run("Combined", func(t *testing.T) {
		_, s, err := resolveOptions(registry, "csv", encode, []Option{
			WithMap(map[string]any{"sorted": true, "limit": 1}),
			Limit(5),
		})
		require.NoError(t, err)

		assert.True(t, s.opts.Sorted)
		assert.Equal(t, 5, s.opts.Limit)
	})

	t.Run("InvalidValue", func(t *testing.T) {
		_, _, err := resolveOptions(registry, "csv", encode, []Option{WithMap(map[string]any{
			"sorted": true,
			"limit":  "abc",
		})})
		require.Error(t, err)

		var optionErr *InvalidOptionError
		require.ErrorAs(t, err, &optionErr)
		assert.Equal(t, "limit", optionErr.Key)
		assert.Equal(t, "abc", optionErr.Value)
	})

	t.Run("FirstErrorWins", func(t *testing.T) {
		_, _, err := resolveOptions(registry, "csv", encode, []Option{
			WithMap(map[string]any{"limit": "abc"}),
			WithMap(map[string]any{"pretty": []int{1}}),
		})
		require.Error(t, err)

		var optionErr *InvalidOptionError
		require.ErrorAs(t, err, &optionErr)
		assert.Equal(t, "limit", optionErr.Key)
	})
}
