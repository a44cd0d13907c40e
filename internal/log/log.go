// Package log provides leveled logging for the huffpack command.
// The log messages are intended to be user-facing,
// one line per message with key=value attributes.
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

// Logger is a leveled logger.
type Logger struct{ *slog.Logger }

// Option customizes a Logger built with New.
type Option func(*handler)

// WithColor enables or disables ANSI colors in the output.
// Colors are disabled by default.
func WithColor(color bool) Option {
	return func(h *handler) {
		h.Color = color
	}
}

// New builds a logger that writes messages at or above the given level
// to the given writer.
func New(w io.Writer, lvl Level, opts ...Option) *Logger {
	h := &handler{
		W:     w,
		Level: lvl,
	}
	for _, opt := range opts {
		opt(h)
	}
	return &Logger{slog.New(h)}
}
