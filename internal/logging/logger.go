package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger writes leveled, human-oriented messages to the operator
type Logger struct {
	debug   bool
	noColor bool
	out     io.Writer
}

// New creates a new logger instance writing to stderr
func New(debug, noColor bool) *Logger {
	return &Logger{
		debug:   debug,
		noColor: noColor,
		out:     os.Stderr,
	}
}

// NewWithWriter creates a logger that writes to w instead of stderr.
// Color is always disabled.
func NewWithWriter(w io.Writer, debug bool) *Logger {
	return &Logger{
		debug:   debug,
		noColor: true,
		out:     w,
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit("\033[32m✓\033[0m", "✓", format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit("\033[33m⚠\033[0m", "⚠", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit("\033[31m✗\033[0m", "✗", format, args...)
}

// Debug logs a debug message if debug mode is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.emit("\033[36m[DEBUG]\033[0m", "[DEBUG]", format, args...)
}

// DebugEnabled reports whether Debug messages are written
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

func (l *Logger) emit(colored, plain, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	prefix := colored
	if l.noColor {
		prefix = plain
	}
	fmt.Fprintf(l.out, "%s %s\n", prefix, msg)
}

// Secret represents a value that should be redacted in logs
type Secret string

// String implements the Stringer interface, always returning a redacted value
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements the GoStringer interface for %#v formatting
func (s Secret) GoString() string {
	return "[REDACTED]"
}

// Redact replaces sensitive values in a string with [REDACTED]
func Redact(s string, secrets []string) string {
	result := s
	for _, secret := range secrets {
		if secret != "" && len(secret) > 3 { // Only redact non-trivial secrets
			result = strings.ReplaceAll(result, secret, "[REDACTED]")
		}
	}
	return result
}
