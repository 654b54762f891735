package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. Development gets a readable console writer,
// everything else gets JSON lines with timestamps.
func New(env string) zerolog.Logger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Str("service", "poliklinik-dashboard").
			Logger()
	}
	return zerolog.New(w).
		With().
		Timestamp().
		Str("service", "poliklinik-dashboard").
		Logger()
}
