// Package logging builds the console logger shared by the binaries.
package logging

import (
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New returns a console logger tagged with service. An unknown level name
// falls back to info.
func New(w io.Writer, service, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		With().Timestamp().Str("service", service).Logger().
		Level(lvl)
}

// WithRunID returns a child logger carrying a fresh run id, and the id.
func WithRunID(l zerolog.Logger, key string) (zerolog.Logger, string) {
	id := uuid.NewString()
	return l.With().Str(key, id).Logger(), id
}
