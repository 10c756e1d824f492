package codec

import (
	"bytes"
)

// SkipLines drops the first n lines of b, each ended by sep. Skipping past
// the last line leaves nothing.
func SkipLines(b []byte, n int, sep string) []byte {
	if sep == "" {
		sep = "\n"
	}
	for ; n > 0 && len(b) > 0; n-- {
		i := bytes.Index(b, []byte(sep))
		if i < 0 {
			return nil
		}
		b = b[i+len(sep):]
	}
	return b
}
