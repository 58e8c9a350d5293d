// Package log provides structured logging for the tachyon module. It wraps
// Go's log/slog with JSON output and per-module child loggers, so bundle
// construction, custody authorization, and stamp verification can each log
// under their own "module" attribute.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with per-module and key-value context.
type Logger struct {
	inner *slog.Logger
}

// defaultLogger is the process-wide logger used by the package-level
// convenience functions.
var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// Format selects which of this package's LogFormatter styles backs a
// Logger's output: FormatJSON for machine consumption (the default),
// FormatText or FormatColor for a human reading a terminal.
type Format int

const (
	FormatJSON Format = iota
	FormatText
	FormatColor
)

// FormatFromString parses a Format from its string representation,
// case-insensitively. Unrecognized strings return FormatJSON.
func FormatFromString(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return FormatText
	case "color", "colour":
		return FormatColor
	default:
		return FormatJSON
	}
}

func formatterFor(f Format) LogFormatter {
	switch f {
	case FormatText:
		return &TextFormatter{}
	case FormatColor:
		return &ColorFormatter{}
	default:
		return &JSONFormatter{}
	}
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	return NewWithFormat(level, FormatJSON)
}

// NewWithFormat creates a Logger writing to stderr at the given level,
// rendered through one of this package's three LogFormatter styles.
func NewWithFormat(level slog.Level, format Format) *Logger {
	h := newFormatterHandler(os.Stderr, level, formatterFor(format))
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler. This
// is useful for testing or for writing to a custom destination.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute. This
// is the primary way subsystems (bundle, custody, stamp, ...) obtain their
// own contextual logger.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// ---------------------------------------------------------------------------
// Package-level convenience functions -- delegate to defaultLogger.
// ---------------------------------------------------------------------------

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
