package common

import (
	"io"
	"log/slog"
	"os"
)

// LogLevel represents logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	default:
		return "info"
	}
}

// ToSlogLevel converts LogLevel to slog.Level
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LogLevelError:
		return slog.LevelError
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// ParseLogLevel maps a config string to a LogLevel. Empty input defaults to info.
func ParseLogLevel(s string) (LogLevel, bool) {
	switch s {
	case "error":
		return LogLevelError, true
	case "warn", "warning":
		return LogLevelWarn, true
	case "info", "":
		return LogLevelInfo, true
	case "debug":
		return LogLevelDebug, true
	default:
		return LogLevelInfo, false
	}
}

// Logger provides a centralized logging interface for leafcheck
type Logger struct {
	*slog.Logger
	level  LogLevel
	masker *Masker
}

func newLogger(handler slog.Handler, level LogLevel, masker *Masker) *Logger {
	return &Logger{
		Logger: slog.New(&maskingHandler{inner: handler, masker: masker}),
		level:  level,
		masker: masker,
	}
}

// NewLogger creates a new structured text logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return NewLoggerWithWriter(os.Stdout, level)
}

// NewLoggerWithWriter creates a text logger writing to w; used by tests
func NewLoggerWithWriter(w io.Writer, level LogLevel) *Logger {
	opts := &slog.HandlerOptions{Level: level.ToSlogLevel()}
	return newLogger(slog.NewTextHandler(w, opts), level, NewMasker())
}

// NewJSONLogger creates a structured logger with JSON output
func NewJSONLogger(level LogLevel) *Logger {
	opts := &slog.HandlerOptions{Level: level.ToSlogLevel()}
	return newLogger(slog.NewJSONHandler(os.Stdout, opts), level, NewMasker())
}

// Level returns the current log level
func (l *Logger) Level() LogLevel {
	return l.level
}

// EnableMasking toggles masking of sensitive attribute values for this logger
func (l *Logger) EnableMasking(enabled bool) {
	if l.masker != nil {
		l.masker.SetEnabled(enabled)
	}
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
		level:  l.level,
		masker: l.masker,
	}
}

// WithComponent returns a logger with component context
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

// WithAccount returns a logger with account label context
func (l *Logger) WithAccount(account string) *Logger {
	return l.with("account", account)
}

// WithChannel returns a logger with notification channel context
func (l *Logger) WithChannel(channel string) *Logger {
	return l.with("channel", channel)
}

// WithRequest returns a logger with HTTP request context
func (l *Logger) WithRequest(method, url string) *Logger {
	return l.with("method", method, "url", url)
}

// Global default logger instance
var defaultLogger = NewLogger(LogLevelInfo)

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetLogger returns the default logger
func GetLogger() *Logger {
	return defaultLogger
}

// LogError logs an error with context
func LogError(msg string, err error, attrs ...any) {
	args := append([]any{"error", err}, attrs...)
	defaultLogger.Error(msg, args...)
}

// LogInfo logs informational message
func LogInfo(msg string, attrs ...any) {
	defaultLogger.Info(msg, attrs...)
}

// LogDebug logs debug message
func LogDebug(msg string, attrs ...any) {
	defaultLogger.Debug(msg, attrs...)
}

// LogWarn logs warning message
func LogWarn(msg string, attrs ...any) {
	defaultLogger.Warn(msg, attrs...)
}
