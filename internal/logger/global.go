package logger

import (
	"os"
	"strings"
	"sync"
)

var (
	globalMu     sync.RWMutex
	globalLogger = NewDefault()
)

func init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Getenv("ENVIRONMENT"))
}

// Configure applies level and format names to the global logger. Unknown or
// empty names leave the current setting. Format "auto" selects text output
// for development environments and JSON everywhere else.
func Configure(level, format, environment string) {
	l := GetGlobalLogger()
	if lv, ok := ParseLevel(level); ok {
		l.SetLevel(lv)
	}
	if strings.EqualFold(strings.TrimSpace(format), "auto") {
		switch strings.ToLower(environment) {
		case "development", "local", "test":
			l.SetFormat(TextFormat)
		default:
			l.SetFormat(JSONFormat)
		}
		return
	}
	if f, ok := ParseFormat(format); ok {
		l.SetFormat(f)
	}
}

// ParseLevel parses a log level name
func ParseLevel(level string) (LogLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	case "FATAL":
		return FATAL, true
	default:
		return INFO, false
	}
}

// ParseFormat parses a log format name
func ParseFormat(format string) (LogFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat, true
	case "text":
		return TextFormat, true
	default:
		return JSONFormat, false
	}
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// Component returns a child of the global logger for one package
func Component(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

// Info logs an info message using the global logger
func Info(message string, fields ...Fields) { GetGlobalLogger().log(INFO, message, first(fields), nil) }

// Warn logs a warning message using the global logger
func Warn(message string, fields ...Fields) { GetGlobalLogger().log(WARN, message, first(fields), nil) }

// Error logs an error message using the global logger
func Error(message string, err error, fields ...Fields) {
	GetGlobalLogger().log(ERROR, message, first(fields), err)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...Fields) {
	GetGlobalLogger().log(FATAL, message, first(fields), err)
}
