// Package logging builds the zerolog loggers used by the fixture packages and
// the CLI.
package logging

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const consoleTimeFormat = time.RFC3339

var debugOn = os.Getenv("LOGPROOF_DEBUG") == "1"

var current atomic.Pointer[zerolog.Logger]

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.Nop()
	if debugOn {
		l = New(os.Stderr, "debug")
	}
	current.Store(&l)
}

// Logger returns the package-wide logger. It discards everything unless
// LOGPROOF_DEBUG=1 or SetLogger has been called.
func Logger() *zerolog.Logger {
	return current.Load()
}

// SetLogger replaces the package-wide logger.
func SetLogger(l zerolog.Logger) {
	current.Store(&l)
}

// New returns a logger at the given level writing to w. Unknown levels fall
// back to info. A terminal *os.File gets a colored console writer.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := w
	if f, ok := w.(*os.File); ok {
		out = zerolog.ConsoleWriter{
			Out:        colorable.NewColorable(f),
			NoColor:    !term.IsTerminal(int(f.Fd())),
			TimeFormat: consoleTimeFormat,
		}
	}
	l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	if err != nil {
		l.Error().Msgf("Failed to parse log level %q, using %q instead", level, lvl)
	}
	return l
}
