package uartring

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Component identifies the part of the transport a log record comes from.
type Component string

// Components used in log records.
const (
	ComponentPort   Component = "port"
	ComponentISR    Component = "isr"
	ComponentDevice Component = "device"
)

var (
	defaultLogger *slog.Logger
	logLevel      = new(slog.LevelVar)
	logMutex      sync.RWMutex
)

func init() {
	logLevel.Set(slog.LevelWarn)
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// Logger returns the logger used by Ports created without Config.Logger.
func Logger() *slog.Logger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return defaultLogger
}

// SetLogger replaces the default logger. Ports already created keep theirs.
func SetLogger(logger *slog.Logger) {
	logMutex.Lock()
	defer logMutex.Unlock()
	defaultLogger = logger
}

// SetLogLevel sets the minimum level of the default logger and of loggers made
// by NewLogger and NewJSONLogger with nil options.
func SetLogLevel(level slog.Level) { logLevel.Set(level) }

// LogLevel returns the current minimum level.
func LogLevel() slog.Level { return logLevel.Level() }

// NewLogger creates a text logger writing to w.
func NewLogger(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: logLevel}
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewJSONLogger creates a JSON logger writing to w.
func NewJSONLogger(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: logLevel}
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func componentLogger(l *slog.Logger, c Component) *slog.Logger {
	return l.With("component", string(c))
}
