// ABOUTME: Logrus-backed logger implementation with structured fields
// ABOUTME: Emits JSON log lines with level support

package logrus

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Logger implements the Logger interface on top of logrus
type Logger struct {
	entry *log.Logger
}

// NewLogger creates a JSON-formatted logger writing to stdout at the
// given level ("debug", "info", "warn", "error"; anything else means info).
func NewLogger(level string) *Logger {
	return NewLoggerWithOutput(level, os.Stdout)
}

// NewLoggerWithOutput creates a logger writing to the given destination.
func NewLoggerWithOutput(level string, out io.Writer) *Logger {
	l := log.New()
	l.SetOutput(out)
	l.SetFormatter(&log.JSONFormatter{})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	l.SetLevel(parsed)

	return &Logger{entry: l}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(log.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(log.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(log.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(log.Fields(fields)).Error(msg)
}
