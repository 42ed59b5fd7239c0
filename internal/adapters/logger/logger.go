package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/difrex/surok-build/internal/core/ports"
)

// messager describes an error that can report its own message without the
// chain. This matches the Message() method provided by zerr.Error.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	jsonMode bool
}

// Option configures a Logger.
type Option func(*options)

type options struct {
	w    io.Writer
	json bool
}

// WithWriter directs log output to w instead of os.Stderr.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.w = w }
}

// WithJSON switches the logger to JSON output, for CI log collectors.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// New creates a new Logger instance.
func New(opts ...Option) ports.Logger {
	o := options{w: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	var handler slog.Handler
	if o.json {
		handler = slog.NewJSONHandler(o.w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = NewPrettyHandler(o.w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &Logger{
		logger:   slog.New(handler),
		jsonMode: o.json,
	}
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn(msg)
}

// Error logs an error, expanding zerr chains into a readable trace.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorChain(err))
}

// formatErrorChain renders the error chain hierarchically, one cause per line.
func formatErrorChain(err error) string {
	var messages []string
	current := err

	for current != nil {
		if m, ok := current.(messager); ok {
			// zerr error: raw message without the chain
			messages = append(messages, m.Message())
			current = errors.Unwrap(current)
		} else {
			// Standard error: full Error() and stop
			messages = append(messages, current.Error())
			break
		}
	}

	var lines []string
	for i, msg := range messages {
		parts := strings.Split(msg, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+parts[0])
			for _, p := range parts[1:] {
				lines = append(lines, "       "+p)
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+parts[0])
		for _, p := range parts[1:] {
			lines = append(lines, "      "+p)
		}
	}

	return strings.Join(lines, "\n")
}
