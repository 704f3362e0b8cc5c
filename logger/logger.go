// Package logger defines the structured logging contract used across the
// harness and provides a zerolog-backed implementation of it.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the contract for structured logging throughout the harness.
type Logger interface {
	Debug() Event
	Info() Event
	Warn() Event
	Error() Event
	WithFields(fields map[string]any) Logger
}

// Event is a structured log event that accumulates fields and is finalized
// by Msg or Msgf.
type Event interface {
	Msg(msg string)
	Msgf(format string, args ...any)
	Err(err error) Event
	Str(key, value string) Event
	Int(key string, value int) Event
	Dur(key string, d time.Duration) Event
	Interface(key string, i any) Event
	Bytes(key string, val []byte) Event
}

// ZeroLogger implements Logger on top of zerolog.
type ZeroLogger struct {
	zlog *zerolog.Logger
}

var _ Logger = (*ZeroLogger)(nil)

// New creates a ZeroLogger writing to stdout at the given level.
// Unknown levels fall back to info. If pretty is true, output is formatted
// for human readability instead of JSON.
func New(level string, pretty bool) *ZeroLogger {
	return NewWithOutput(level, pretty, os.Stdout)
}

// NewWithOutput creates a ZeroLogger writing to the given writer. Tests use
// this to capture log output.
func NewWithOutput(level string, pretty bool, out io.Writer) *ZeroLogger {
	var l zerolog.Logger
	if pretty {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		l = zerolog.New(out).With().Timestamp().Logger()
	}

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zLevel = zerolog.InfoLevel
	}
	l = l.Level(zLevel)

	return &ZeroLogger{zlog: &l}
}

// Nop returns a logger that discards everything. Intended for tests and for
// callers that do not want client-level request logging.
func Nop() *ZeroLogger {
	l := zerolog.Nop()
	return &ZeroLogger{zlog: &l}
}

// WithFields returns a logger with additional fields attached to all entries.
func (l *ZeroLogger) WithFields(fields map[string]any) Logger {
	log := l.zlog.With().Fields(fields).Logger()
	return &ZeroLogger{zlog: &log}
}
