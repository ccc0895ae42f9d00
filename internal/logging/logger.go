// Package logging emits one JSON object per log line: timestamp, level,
// message, and an optional fields map. Loggers are cheap to derive with
// WithField, so request-scoped and component-scoped loggers share one output.
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// LogEntry is one structured log line.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Logger writes JSON log lines to a single output. Derived loggers (WithField)
// share the parent's output and level but carry their own base fields.
type Logger struct {
	mu     sync.Mutex
	output io.Writer
	level  Level
	base   map[string]interface{}
}

// New creates a Logger writing to stdout at info level.
func New() *Logger {
	return &Logger{output: os.Stdout, level: LevelInfo}
}

// SetOutput sets the output writer.
func (l *Logger) SetOutput(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	return l
}

// SetLevel sets the minimum level that gets written.
func (l *Logger) SetLevel(level Level) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	return l
}

// WithField returns a logger that carries an extra field on every line.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a logger that carries extra fields on every line.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		output: l.output,
		level:  l.level,
		base:   merged(l.base, fields),
	}
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(LevelDebug, msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(LevelInfo, msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(LevelWarn, msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(LevelError, msg, fields)
}

func (l *Logger) log(level Level, msg string, extra []map[string]interface{}) {
	if level < l.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
	}
	entry.Fields = merged(l.base, extra...)

	line, err := json.Marshal(entry)
	if err != nil {
		// A field that can't be marshaled must not swallow the message
		line = []byte(entry.Timestamp + " " + entry.Level + " " + msg)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write(line)
	l.output.Write([]byte("\n"))
}

// merged combines base fields with overrides into a fresh map. Returns nil
// when there is nothing to report, so empty fields stay out of the JSON.
func merged(base map[string]interface{}, overrides ...map[string]interface{}) map[string]interface{} {
	n := len(base)
	for _, m := range overrides {
		n += len(m)
	}
	if n == 0 {
		return nil
	}
	out := make(map[string]interface{}, n)
	for k, v := range base {
		out[k] = v
	}
	for _, m := range overrides {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// Default is the process-wide logger.
var Default = New()

// SetDefaultLevel sets the level for the default logger.
func SetDefaultLevel(level Level) {
	Default.SetLevel(level)
}

func Debug(msg string, fields ...map[string]interface{}) {
	Default.Debug(msg, fields...)
}

func Info(msg string, fields ...map[string]interface{}) {
	Default.Info(msg, fields...)
}

func Warn(msg string, fields ...map[string]interface{}) {
	Default.Warn(msg, fields...)
}

func Error(msg string, fields ...map[string]interface{}) {
	Default.Error(msg, fields...)
}
