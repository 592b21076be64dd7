// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LogBuffer captures text-formatted log output for assertions.
//
// Thread-safety: LogBuffer is safe for concurrent use, so it can back
// loggers handed to load goroutines.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewLogBuffer returns an empty buffer and a logger writing to it at level.
func NewLogBuffer(level slog.Level) (*LogBuffer, *slog.Logger) {
	b := &LogBuffer{}
	return b, slog.New(slog.NewTextHandler(b, &slog.HandlerOptions{Level: level}))
}

// Write implements io.Writer.
func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Lines returns the logged records, one per line.
func (b *LogBuffer) Lines() []string {
	s := strings.TrimRight(b.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Count returns the number of records whose message is msg.
func (b *LogBuffer) Count(msg string) int {
	n := 0
	for _, line := range b.Lines() {
		if strings.Contains(line, "msg="+quote(msg)) {
			n++
		}
	}
	return n
}

// quote renders msg the way slog's text handler does.
func quote(msg string) string {
	if strings.ContainsAny(msg, " =\"") || msg == "" {
		return `"` + strings.ReplaceAll(msg, `"`, `\"`) + `"`
	}
	return msg
}
