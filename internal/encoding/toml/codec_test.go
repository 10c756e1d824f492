package toml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// original form of the data.
const original = `# key-value pair
key = "value"
list = ["item1", "item2", "item3"]

[map]
key = "value"

# nested
# map
[nested_map]
[nested_map.map]
key = "value"
list = [
  "item1",
  "item2",
  "item3",
]
`

// encoded form of the data.
const encoded = `key = "value"
list = ["item1", "item2", "item3"]

[map]
key = "value"

[nested_map]

[nested_map.map]
key = "value"
list = ["item1", "item2", "item3"]
`

func items() value.Value {
	return value.Sequence(value.String("item1"), value.String("item2"), value.String("item3"))
}

// data is the internal representation.
var data = value.RecordDocument(value.NewRecord().
	Set("key", value.String("value")).
	Set("list", items()).
	Set("map", value.RecordOf(value.NewRecord().Set("key", value.String("value")))).
	Set("nested_map", value.RecordOf(value.NewRecord().
		Set("map", value.RecordOf(value.NewRecord().
			Set("key", value.String("value")).
			Set("list", items()))))))

var opts = codec.Options{Limit: codec.NoLimit}

func TestCodec_Encode(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		b, err := Codec{}.Encode(data, opts)
		require.NoError(t, err)

		assert.Equal(t, encoded, string(b))
	})

	t.Run("InsertionOrder", func(t *testing.T) {
		doc := value.RecordDocument(value.NewRecord().
			Set("c", value.String("z")).
			Set("a", value.String("x")).
			Set("b", value.String("y")))

		b, err := Codec{}.Encode(doc, opts)
		require.NoError(t, err)
		assert.Equal(t, "c = \"z\"\na = \"x\"\nb = \"y\"\n", string(b))

		o := opts
		o.Sorted = true

		b, err = Codec{}.Encode(doc, o)
		require.NoError(t, err)
		assert.Equal(t, "a = \"x\"\nb = \"y\"\nc = \"z\"\n", string(b))
	})

	t.Run("TablesAfterScalars", func(t *testing.T) {
		doc := value.RecordDocument(value.NewRecord().
			Set("server", value.RecordOf(value.NewRecord().Set("port", value.Int(8080)))).
			Set("name", value.String("gss")).
			Set("skip", value.Null()).
			Set("users", value.Sequence(
				value.RecordOf(value.NewRecord().Set("id", value.Int(1))),
				value.RecordOf(value.NewRecord().Set("id", value.Int(2))),
			)))

		b, err := Codec{}.Encode(doc, opts)
		require.NoError(t, err)

		assert.Equal(t, "name = \"gss\"\n\n[server]\nport = 8080\n\n[[users]]\nid = 1\n\n[[users]]\nid = 2\n", string(b))
	})

	t.Run("QuotedTableKey", func(t *testing.T) {
		doc := value.RecordDocument(value.NewRecord().
			Set("a.b", value.RecordOf(value.NewRecord().Set("c", value.Bool(true)))))

		b, err := Codec{}.Encode(doc, opts)
		require.NoError(t, err)

		assert.Equal(t, "[\"a.b\"]\nc = true\n", string(b))
	})

	t.Run("NullInArray", func(t *testing.T) {
		doc := value.RecordDocument(value.NewRecord().Set("l", value.Sequence(value.Null())))

		_, err := Codec{}.Encode(doc, opts)
		assert.ErrorIs(t, err, ErrNullInArray)
	})

	t.Run("Sequence", func(t *testing.T) {
		_, err := Codec{}.Encode(value.SequenceDocument(value.NewRecord()), opts)
		require.Error(t, err)

		var shapeErr *codec.InvalidShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, "error marshaling TOML bytes: toml: top-level values must be Go maps or structs", err.Error())
	})
}

func TestCodec_Decode(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		doc, err := Codec{}.Decode([]byte(original), opts)
		require.NoError(t, err)

		assert.True(t, data.Equal(doc))
	})

	t.Run("SourceOrder", func(t *testing.T) {
		doc, err := Codec{}.Decode([]byte("c = \"z\"\na = 1\nb = 1.5\n"), opts)
		require.NoError(t, err)

		r := doc.Record()
		assert.Equal(t, []string{"c", "a", "b"}, r.Keys(false, false))

		a, _ := r.Get("a")
		assert.True(t, a.IsInteger())
	})

	t.Run("ArrayOfTables", func(t *testing.T) {
		doc, err := Codec{}.Decode([]byte("[[users]]\nid = 1\n\n[[users]]\nid = 2\n"), opts)
		require.NoError(t, err)

		users, _ := doc.Record().Get("users")
		assert.Len(t, users.Items(), 2)
	})

	t.Run("InvalidData", func(t *testing.T) {
		_, err := Codec{}.Decode([]byte(`invalid data`), opts)
		require.Error(t, err)

		t.Logf("decoding failed as expected: %s", err)
	})
}

func TestCodec_DecodeEncode(t *testing.T) {
	doc, err := Codec{}.Decode([]byte(encoded), opts)
	require.NoError(t, err)

	b, err := Codec{}.Encode(doc, opts)
	require.NoError(t, err)

	assert.Equal(t, encoded, string(b))
}
