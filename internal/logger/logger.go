// Package logger provides the levelled console logger used by the CLI
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// LogLevel defines log severity levels
type LogLevel int

const (
	// Log levels from least to most restrictive
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// String returns the level's name
func (l LogLevel) String() string {
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
		return "NONE"
	}
}

// Logger writes "[time LEVEL] message" lines to out
type Logger struct {
	out       io.Writer
	useColors bool
	level     LogLevel
	now       func() time.Time
}

// New creates a new Logger with the given settings
func New(out io.Writer, level LogLevel, useColors bool) *Logger {
	return &Logger{
		out:       out,
		useColors: useColors,
		level:     level,
		now:       time.Now,
	}
}

// Level returns the current level
func (l *Logger) Level() LogLevel {
	return l.level
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

// ParseLevel converts a level name to a LogLevel. Unknown names yield
// LevelInfo and ok=false.
func ParseLevel(level string) (LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	case "none", "off":
		return LevelNone, true
	default:
		return LevelInfo, false
	}
}

// Debug logs a debug message if verbose mode is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, color.CyanString, format, args)
}

// Info logs an informational message (standard level)
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, color.BlueString, format, args)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, color.YellowString, format, args)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, color.RedString, format, args)
}

func (l *Logger) log(level LogLevel, paint func(string, ...interface{}) string, format string, args []interface{}) {
	if l.level > level || l.out == nil {
		return
	}
	prefix := level.String()
	if l.useColors {
		prefix = paint(prefix)
	}
	fmt.Fprintf(l.out, "[%s %s] %s\n", l.now().Format("15:04:05.000"), prefix, fmt.Sprintf(format, args...))
}
