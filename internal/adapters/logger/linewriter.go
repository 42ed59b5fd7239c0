package logger

import (
	"bytes"
	"strings"
	"sync"

	"github.com/difrex/surok-build/internal/core/ports"
)

// LineWriter is an io.WriteCloser that forwards complete lines of
// external tool output to the structured logger. Partial lines are
// buffered until a newline arrives or the writer is closed.
type LineWriter struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	logger ports.Logger
	warn   bool
}

// NewLineWriter creates a LineWriter logging at info level.
func NewLineWriter(logger ports.Logger) *LineWriter {
	return &LineWriter{logger: logger}
}

// NewWarnLineWriter creates a LineWriter logging at warn level, for
// stderr streams of external tools.
func NewWarnLineWriter(logger ports.Logger) *LineWriter {
	return &LineWriter{logger: logger, warn: true}
}

// Write implements io.Writer.
func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line, put it back and wait for more
			w.buf.WriteString(line)
			break
		}
		w.emit(line)
	}
	return len(p), nil
}

// Close flushes any buffered partial line.
func (w *LineWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
	return nil
}

func (w *LineWriter) emit(line string) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}
	if w.warn {
		w.logger.Warn(line)
		return
	}
	w.logger.Info(line)
}
