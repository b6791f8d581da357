// Package log provides the leveled logger shared by the encoder and the
// huffenc command.  Messages are single lines of the form
//
//	LEVEL message key=value ...
//
// and are meant for people, not machines.
package log

import (
	"io"
	"log/slog"
)

// Level specifies the level of logging.
type Level = slog.Level

// Supported log levels.
const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)

// Logger is a *slog.Logger that knows how to change its own level.
type Logger struct {
	*slog.Logger

	h *handler
}

// New builds a logger that writes to the given writer at level Info.
func New(w io.Writer) *Logger {
	h := &handler{W: w, Level: Info}
	return &Logger{Logger: slog.New(h), h: h}
}

// WithLevel returns a copy of this logger that logs messages at lvl and
// above.
func (l *Logger) WithLevel(lvl Level) *Logger {
	if l.h == nil {
		return l
	}
	h := *l.h
	h.Level = lvl
	return &Logger{Logger: slog.New(&h), h: &h}
}

// WithName builds a new logger whose attributes are grouped under name.
// The returned logger is safe to use concurrently with this logger.
func (l *Logger) WithName(name string) *Logger {
	if l.h == nil {
		return l
	}
	h := l.h.WithGroup(name).(*handler)
	return &Logger{Logger: slog.New(h), h: h}
}
