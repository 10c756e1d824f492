package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		sep  string
		want string
	}{
		{name: "None", in: "a\nb\n", n: 0, sep: "\n", want: "a\nb\n"},
		{name: "Negative", in: "a\nb\n", n: -1, sep: "\n", want: "a\nb\n"},
		{name: "One", in: "a\nb\n", n: 1, sep: "\n", want: "b\n"},
		{name: "CRLF", in: "a\r\nb\r\n", n: 1, sep: "\n", want: "b\r\n"},
		{name: "All", in: "a\nb\n", n: 2, sep: "\n", want: ""},
		{name: "PastEnd", in: "a\nb", n: 5, sep: "\n", want: ""},
		{name: "Separator", in: "a;b;c", n: 2, sep: ";", want: "c"},
		{name: "DefaultSeparator", in: "a\nb", n: 1, sep: "", want: "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(SkipLines([]byte(tt.in), tt.n, tt.sep)))
		})
	}
}
