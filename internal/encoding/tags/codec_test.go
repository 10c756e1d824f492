package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gssio/gss/internal/encoding/codec"
	"github.com/gssio/gss/internal/value"
)

// original form of the data.
const original = `
a=x b=y c=z
# comment
b=g c=h d=i
`

// encoded form of the data.
const encoded = "a=x b=y c=z\nb=g c=h d=i\n"

// data is the internal representation.
var data = value.SequenceDocument(
	value.NewRecord().Set("a", value.String("x")).Set("b", value.String("y")).Set("c", value.String("z")),
	value.NewRecord().Set("b", value.String("g")).Set("c", value.String("h")).Set("d", value.String("i")),
)

var opts = codec.Options{LineSeparator: "\n", KeyValueSeparator: "=", Limit: codec.NoLimit}

func TestCodec_Encode(t *testing.T) {
	tests := []struct {
		name string
		doc  value.Document
		opts func(o *codec.Options)
		want string
	}{
		{
			name: "Record",
			doc:  value.RecordDocument(data.Records()[0]),
			want: "a=x b=y c=z",
		},
		{
			name: "Sequence",
			doc:  data,
			opts: func(o *codec.Options) { o.Sorted = true },
			want: encoded,
		},
		{
			name: "SortedReversed",
			doc:  data,
			opts: func(o *codec.Options) { o.Sorted = true; o.Reversed = true },
			want: "c=z b=y a=x\nd=i c=h b=g\n",
		},
		{
			name: "Header",
			doc:  data,
			opts: func(o *codec.Options) { o.Header = []string{"c", "a"} },
			want: "c=z a=x\nc=h a=\n",
		},
		{
			name: "HeaderExpanded",
			doc:  data,
			opts: func(o *codec.Options) { o.Header = []string{"c"}; o.ExpandHeader = true },
			want: "c=z a=x b=y\nc=h b=g d=i\n",
		},
		{
			name: "Separators",
			doc:  data,
			opts: func(o *codec.Options) { o.KeyValueSeparator = ":"; o.LineSeparator = ";" },
			want: "a:x b:y c:z;b:g c:h d:i;",
		},
		{
			name: "Limit",
			doc:  data,
			opts: func(o *codec.Options) { o.Limit = 1 },
			want: "a=x b=y c=z\n",
		},
		{
			name: "Quoting",
			doc: value.RecordDocument(value.NewRecord().
				Set("hello", value.String(`beautiful "wide" world`)).
				Set("my key", value.Int(1)).
				Set("text", value.String("two\nlines"))),
			want: `hello="beautiful \"wide\" world" "my key"=1 text=two\nlines`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := opts
			if tt.opts != nil {
				tt.opts(&o)
			}

			b, err := Codec{}.Encode(tt.doc, o)
			require.NoError(t, err)

			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestCodec_Decode(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		o := opts
		o.Comment = "#"

		doc, err := Codec{}.Decode([]byte(original), o)
		require.NoError(t, err)

		assert.True(t, data.Equal(doc))
	})

	t.Run("SingleLine", func(t *testing.T) {
		doc, err := Codec{}.Decode([]byte("a=x b=y c=z"), opts)
		require.NoError(t, err)

		require.True(t, doc.IsSequence())
		assert.Len(t, doc.Records(), 1)
	})

	t.Run("Quoted", func(t *testing.T) {
		doc, err := Codec{}.Decode([]byte(`hello="beautiful \"wide\" world" "my key"=1 text=two\nlines empty=`), opts)
		require.NoError(t, err)

		want := value.NewRecord().
			Set("hello", value.String(`beautiful "wide" world`)).
			Set("my key", value.String("1")).
			Set("text", value.String("two\nlines")).
			Set("empty", value.String(""))
		assert.True(t, want.Equal(doc.Records()[0]))
	})

	t.Run("Limit", func(t *testing.T) {
		o := opts
		o.Limit = 1

		doc, err := Codec{}.Decode([]byte(encoded), o)
		require.NoError(t, err)

		assert.Len(t, doc.Records(), 1)
	})

	t.Run("SkipLines", func(t *testing.T) {
		o := opts
		o.SkipLines = 1

		doc, err := Codec{}.Decode([]byte("orphan\n"+encoded), o)
		require.NoError(t, err)

		assert.True(t, data.Equal(doc))

		o.LineSeparator = ";"
		doc, err = Codec{}.Decode([]byte("orphan;a=x b=y c=z;b=g c=h d=i"), o)
		require.NoError(t, err)

		assert.True(t, data.Equal(doc))
	})

	t.Run("MissingSeparator", func(t *testing.T) {
		_, err := Codec{}.Decode([]byte("a=x orphan"), opts)
		assert.ErrorIs(t, err, ErrMissingSeparator)
	})

	t.Run("UnterminatedQuote", func(t *testing.T) {
		_, err := Codec{}.Decode([]byte(`a="x`), opts)
		assert.ErrorIs(t, err, ErrUnterminatedQuote)
	})

	t.Run("InvalidSeparator", func(t *testing.T) {
		o := opts
		o.KeyValueSeparator = "=>"

		_, err := Codec{}.Decode([]byte(encoded), o)
		assert.Error(t, err)
	})
}

func TestCodec_DecodeEncode(t *testing.T) {
	doc, err := Codec{}.Decode([]byte(encoded), opts)
	require.NoError(t, err)

	b, err := Codec{}.Encode(doc, opts)
	require.NoError(t, err)

	assert.Equal(t, encoded, string(b))
}
