// Package utils provides common utilities shared across packages
package utils

// Logger is the printf-style logging interface every package logs through
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NoopLogger discards everything. It is the default for library packages
// so callers that don't care about logs never have to pass one.
type NoopLogger struct{}

func (NoopLogger) Debug(format string, args ...interface{}) {}
func (NoopLogger) Info(format string, args ...interface{})  {}
func (NoopLogger) Warn(format string, args ...interface{})  {}
func (NoopLogger) Error(format string, args ...interface{}) {}

// OrNoop returns l, or a NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}
