package gss

import (
	"io"
	"log"

	jww "github.com/spf13/jwalterweatherman"
)

// defaultLogger discards everything. Callers opt in with WithLogger.
var defaultLogger = jww.NewNotepad(jww.LevelError, jww.LevelError, io.Discard, io.Discard, "gss", log.LstdFlags)

// WithLogger sets a custom logger for a single call.
func WithLogger(l *jww.Notepad) Option {
	return optionFunc(func(s *settings) {
		if l != nil {
			s.logger = l
		}
	})
}
