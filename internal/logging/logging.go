// Package logging builds the zerolog logger shared by the CLI and the
// enhancement engine.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a console logger writing to stderr. Verbose enables
// debug-level stage logging.
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}
