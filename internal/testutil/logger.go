package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// NopLogger returns a logger that discards all output
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// LogRecord is one decoded JSON log line
type LogRecord map[string]any

// Level returns the record's level, e.g. "WARN"
func (r LogRecord) Level() string {
	s, _ := r[slog.LevelKey].(string)
	return s
}

// Message returns the record's message
func (r LogRecord) Message() string {
	s, _ := r[slog.MessageKey].(string)
	return s
}

// CaptureLogger records everything logged at debug and above
type CaptureLogger struct {
	*slog.Logger

	mu  sync.Mutex
	buf bytes.Buffer
}

// NewCaptureLogger returns a logger whose output can be inspected with Records
func NewCaptureLogger() *CaptureLogger {
	c := &CaptureLogger{}
	c.Logger = slog.New(slog.NewJSONHandler(lockedWriter{c}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return c
}

// Records decodes every line logged so far. Lines that are not JSON are skipped.
func (c *CaptureLogger) Records() []LogRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	var records []LogRecord
	for _, line := range strings.Split(strings.TrimSpace(c.buf.String()), "\n") {
		var rec LogRecord
		if err := json.Unmarshal([]byte(line), &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records
}

// Find returns the first record with the given message
func (c *CaptureLogger) Find(msg string) (LogRecord, bool) {
	for _, rec := range c.Records() {
		if rec.Message() == msg {
			return rec, true
		}
	}
	return nil, false
}

type lockedWriter struct{ c *CaptureLogger }

func (w lockedWriter) Write(p []byte) (int, error) {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	return w.c.buf.Write(p)
}
