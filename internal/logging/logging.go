// Package logging provides a leveled printf-style logger on top of slog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		// Above every level we emit.
		return slog.LevelError + 4
	}
}

// ParseLevel parses a log level string. Unknown values mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Logger is a leveled logger. The printf methods and the structured
// Slog view share one handler, level and output.
type Logger struct {
	mu     sync.Mutex
	level  slog.LevelVar
	format Format
	slog   *slog.Logger
}

// New creates a text logger writing to stderr.
func New(level Level) *Logger {
	return NewWithOptions(level, FormatText, os.Stderr)
}

// NewWithOptions creates a logger with an explicit format and output.
func NewWithOptions(level Level, format Format, w io.Writer) *Logger {
	l := &Logger{format: format}
	l.level.Set(level.slogLevel())
	l.slog = slog.New(l.handler(w))
	return l
}

func (l *Logger) handler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: &l.level}
	if l.format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.slog = slog.New(l.handler(w))
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.slogLevel())
}

// Slog returns the structured logger behind l.
func (l *Logger) Slog() *slog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.slog
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	lg := l.Slog()
	lvl := level.slogLevel()
	if !lg.Enabled(context.Background(), lvl) {
		return
	}
	lg.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return NewWithOptions(LevelError+1, FormatText, io.Discard)
}
