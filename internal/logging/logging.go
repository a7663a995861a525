// Package logging writes structured JSON log lines, one object per line.
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger encodes events as JSON lines stamped in a fixed location.
// It is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	enc *json.Encoder
	loc *time.Location
}

// New returns a Logger writing to w. A nil loc means UTC.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{enc: json.NewEncoder(w), loc: loc}
}

var std = New(os.Stdout, time.UTC)

// Default returns the process-wide stdout logger.
func Default() *Logger { return std }

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	if l != nil {
		std = l
	}
}

// Info logs an event at info level.
func (l *Logger) Info(component, event string, fields map[string]any) {
	l.Log("info", component, event, fields)
}

// Error logs an event at error level with the error message attached.
func (l *Logger) Error(component, event string, err error, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	if err != nil {
		fields["error_message"] = err.Error()
	}
	l.Log("error", component, event, fields)
}

// Log writes one entry. Reserved keys in fields are overwritten.
func (l *Logger) Log(level, component, event string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	entry["level"] = level
	entry["component"] = component
	entry["event"] = event

	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(entry)
}

// Location returns the location timestamps are rendered in.
func (l *Logger) Location() *time.Location { return l.loc }
