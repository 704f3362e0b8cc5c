package logger

import (
	"time"

	"github.com/rs/zerolog"
)

// zerologEvent adapts a *zerolog.Event to the Event interface.
type zerologEvent struct {
	event *zerolog.Event
}

func (e *zerologEvent) Msg(msg string) {
	e.event.Msg(msg)
}

func (e *zerologEvent) Msgf(format string, args ...any) {
	e.event.Msgf(format, args...)
}

func (e *zerologEvent) Err(err error) Event {
	return &zerologEvent{event: e.event.Err(err)}
}

func (e *zerologEvent) Str(key, value string) Event {
	return &zerologEvent{event: e.event.Str(key, value)}
}

func (e *zerologEvent) Int(key string, value int) Event {
	return &zerologEvent{event: e.event.Int(key, value)}
}

func (e *zerologEvent) Dur(key string, d time.Duration) Event {
	return &zerologEvent{event: e.event.Dur(key, d)}
}

func (e *zerologEvent) Interface(key string, i any) Event {
	return &zerologEvent{event: e.event.Interface(key, i)}
}

func (e *zerologEvent) Bytes(key string, val []byte) Event {
	return &zerologEvent{event: e.event.Bytes(key, val)}
}

// Debug creates a debug-level log event.
func (l *ZeroLogger) Debug() Event {
	return &zerologEvent{event: l.zlog.Debug()}
}

// Info creates an info-level log event.
func (l *ZeroLogger) Info() Event {
	return &zerologEvent{event: l.zlog.Info()}
}

// Warn creates a warning-level log event.
func (l *ZeroLogger) Warn() Event {
	return &zerologEvent{event: l.zlog.Warn()}
}

// Error creates an error-level log event.
func (l *ZeroLogger) Error() Event {
	return &zerologEvent{event: l.zlog.Error()}
}
