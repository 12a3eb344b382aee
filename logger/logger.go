// Package logger provides the leveled, tagged logger used across boollike.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogLevel defines the logging verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelNone  LogLevel = "none"
)

// ParseLogLevel converts a string to a LogLevel, case-insensitively.
func ParseLogLevel(s string) (LogLevel, error) {
	switch l := LogLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelNone:
		return l, nil
	case "warning":
		return LogLevelWarn, nil
	case "":
		return LogLevelInfo, nil
	}
	return "", fmt.Errorf("invalid log level %q (expected debug, info, warn, error or none)", s)
}

// slogLevel maps a LogLevel to the slog level that enables it
func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	case LogLevelNone:
		// above every level slog emits
		return slog.LevelError + 64
	default:
		return slog.LevelInfo
	}
}

// Logger is the logging surface the processor and generator write to
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu       sync.RWMutex
	level    = new(slog.LevelVar)
	tag      = "BOOLLIKE"
	output   io.Writer = os.Stderr
	fallback *slogLogger
)

type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) with() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return s.l.With("tag", tag)
}

func (s *slogLogger) Debug(msg string, args ...any) { s.with().Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.with().Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.with().Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.with().Error(msg, args...) }

// NewDefaultLogger returns a Logger writing text records to stderr at the level set by SetupLogger
func NewDefaultLogger() Logger {
	mu.Lock()
	defer mu.Unlock()
	if fallback == nil {
		fallback = newSlogLogger(output)
	}
	return fallback
}

// NewLogger returns a Logger writing to w, sharing the global level and tag
func NewLogger(w io.Writer) Logger {
	return newSlogLogger(w)
}

func newSlogLogger(w io.Writer) *slogLogger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// timestamps make generator output noisy under go generate
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return &slogLogger{l: slog.New(h)}
}

// SetupLogger sets the global log level
func SetupLogger(l LogLevel) {
	level.Set(l.slogLevel())
}

// SetLogTag sets the tag attached to every record
func SetLogTag(t string) {
	mu.Lock()
	defer mu.Unlock()
	tag = t
}

// Nop returns a Logger that discards everything
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
