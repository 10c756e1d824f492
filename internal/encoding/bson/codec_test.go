package bson

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// data is the internal representation.
var data = value.RecordDocument(value.NewRecord().
	Set("key", value.String("value")).
	Set("number", value.Int(42)).
	Set("float", value.Float(1.5)).
	Set("ok", value.Bool(true)).
	Set("none", value.Null()).
	Set("list", value.Sequence(value.String("item1"), value.Int(2))).
	Set("map", value.RecordOf(value.NewRecord().Set("z", value.String("last")).Set("a", value.String("first")))))

var opts = codec.Options{Limit: codec.NoLimit}

func TestCodec_EncodeDecode(t *testing.T) {
	b, err := Codec{}.Encode(data, opts)
	require.NoError(t, err)

	doc, err := Codec{}.Decode(b, opts)
	require.NoError(t, err)

	assert.True(t, data.Equal(doc))

	// re-encoding the decoded document is stable
	b2, err := Codec{}.Encode(doc, opts)
	require.NoError(t, err)
	assert.Equal(t, b, b2)
}

func TestCodec_Encode(t *testing.T) {
	t.Run("Sorted", func(t *testing.T) {
		o := opts
		o.Sorted = true

		b, err := Codec{}.Encode(data, o)
		require.NoError(t, err)

		var d bson.D
		require.NoError(t, bson.Unmarshal(b, &d))

		keys := make([]string, len(d))
		for i, e := range d {
			keys[i] = e.Key
		}
		assert.Equal(t, []string{"float", "key", "list", "map", "none", "number", "ok"}, keys)
	})

	t.Run("Sequence", func(t *testing.T) {
		_, err := Codec{}.Encode(value.SequenceDocument(value.NewRecord()), opts)

		var shapeErr *codec.InvalidShapeError
		assert.ErrorAs(t, err, &shapeErr)
	})
}

func TestCodec_Decode(t *testing.T) {
	t.Run("ExtendedTypes", func(t *testing.T) {
		id := primitive.NewObjectID()
		dec, err := primitive.ParseDecimal128("1.25")
		require.NoError(t, err)
		at := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

		b, err := bson.Marshal(bson.D{
			{Key: "id", Value: id},
			{Key: "amount", Value: dec},
			{Key: "at", Value: primitive.NewDateTimeFromTime(at)},
			{Key: "small", Value: int32(7)},
		})
		require.NoError(t, err)

		doc, err := Codec{}.Decode(b, opts)
		require.NoError(t, err)

		want := value.NewRecord().
			Set("id", value.String(id.Hex())).
			Set("amount", value.String("1.25")).
			Set("at", value.String("2020-01-02T03:04:05Z")).
			Set("small", value.Int(7))
		assert.True(t, want.Equal(doc.Record()))
	})

	t.Run("Unsupported", func(t *testing.T) {
		b, err := bson.Marshal(bson.D{{Key: "bin", Value: primitive.Binary{Subtype: 0x80, Data: []byte{1}}}})
		require.NoError(t, err)

		_, err = Codec{}.Decode(b, opts)
		assert.Error(t, err)
	})

	t.Run("InvalidData", func(t *testing.T) {
		_, err := Codec{}.Decode([]byte(`invalid data`), opts)
		require.Error(t, err)

		t.Logf("decoding failed as expected: %s", err)
	})
}
