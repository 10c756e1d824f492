package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

var opts = codec.Options{LineSeparator: "\n", KeyValueSeparator: "=", Limit: codec.NoLimit}

func TestCodecRegistry_Formats(t *testing.T) {
	registry := NewCodecRegistry()

	want := []string{"bson", "csv", "go", "json", "jsonl", "properties", "tags", "toml", "tsv", "hcl", "hcl2", "yaml"}
	assert.Equal(t, want, registry.Formats())

	// callers cannot change the registry through the returned slice
	registry.Formats()[0] = "changed"
	assert.Equal(t, want, registry.Formats())
}

func TestCodecRegistry_Lookup(t *testing.T) {
	registry := NewCodecRegistry()

	t.Run("OK", func(t *testing.T) {
		f, err := registry.Lookup("csv")
		require.NoError(t, err)

		assert.Equal(t, "csv", f.Name)
		assert.True(t, f.Table)
		assert.True(t, f.Decode)
	})

	t.Run("EncodeOnly", func(t *testing.T) {
		f, err := registry.Lookup("go")
		require.NoError(t, err)

		assert.False(t, f.Decode)
		assert.Nil(t, f.Decoder)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		_, err := registry.Lookup("JSON")
		assert.ErrorIs(t, err, ErrCodecNotFound)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := registry.Lookup("xml")
		assert.ErrorIs(t, err, ErrCodecNotFound)
		assert.NotErrorIs(t, err, ErrDecoderNotFound)
		assert.EqualError(t, err, "codec not found for this format")
	})
}

func TestCodecRegistry_Encode(t *testing.T) {
	registry := NewCodecRegistry()
	doc := value.RecordDocument(value.NewRecord().Set("a", value.String("x")))

	t.Run("OK", func(t *testing.T) {
		b, err := registry.Encode("json", doc, opts)
		require.NoError(t, err)

		assert.Equal(t, `{"a":"x"}`, string(b))
	})

	t.Run("CodecNotFound", func(t *testing.T) {
		_, err := registry.Encode("myformat", doc, opts)
		assert.ErrorIs(t, err, ErrCodecNotFound)
	})
}

func TestCodecRegistry_Decode(t *testing.T) {
	registry := NewCodecRegistry()

	t.Run("OK", func(t *testing.T) {
		doc, err := registry.Decode("yaml", []byte("key: value"), opts)
		require.NoError(t, err)

		v, _ := doc.Record().Get("key")
		assert.Equal(t, value.String("value"), v)
	})

	t.Run("CodecNotFound", func(t *testing.T) {
		_, err := registry.Decode("myformat", nil, opts)
		assert.ErrorIs(t, err, ErrCodecNotFound)
	})

	t.Run("DecoderNotFound", func(t *testing.T) {
		_, err := registry.Decode("go", nil, opts)
		assert.ErrorIs(t, err, ErrDecoderNotFound)
		assert.NotErrorIs(t, err, ErrCodecNotFound)
	})
}

// Every decodable format reads back what it writes.
func TestCodecRegistry_RoundTrip(t *testing.T) {
	registry := NewCodecRegistry()
	doc := value.RecordDocument(value.NewRecord().
		Set("a", value.String("x")).
		Set("b", value.String("y")).
		Set("c", value.String("z")))

	for _, name := range registry.Formats() {
		f, err := registry.Lookup(name)
		require.NoError(t, err)
		if !f.Decode {
			continue
		}

		t.Run(name, func(t *testing.T) {
			b, err := registry.Encode(name, doc, opts)
			require.NoError(t, err)

			decoded, err := registry.Decode(name, b, opts)
			require.NoError(t, err)

			want := doc
			if decoded.IsSequence() {
				want = value.SequenceDocument(doc.Record())
			}
			assert.True(t, want.Equal(decoded), "%s:\n%s", name, b)
		})
	}
}
