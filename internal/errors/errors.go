package errors

import (
	"errors"
	"fmt"
	"strings"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// SimplifyError simplifies complex error messages for users
func SimplifyError(err error) error {
	if err == nil {
		return nil
	}

	// Already a user-friendly error
	var userErr UserError
	if errors.As(err, &userErr) {
		return err
	}
	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		return err
	}

	// Unwrap to get the root cause
	rootErr := err
	for {
		unwrapped := errors.Unwrap(rootErr)
		if unwrapped == nil {
			break
		}
		rootErr = unwrapped
	}

	errStr := rootErr.Error()

	if strings.Contains(errStr, "permission denied") {
		return UserError{
			Message:    err.Error(),
			Suggestion: "Check file permissions or run with appropriate privileges",
			Err:        err,
		}
	}

	if strings.Contains(errStr, "no such file or directory") {
		return UserError{
			Message:    err.Error(),
			Suggestion: "Verify the path exists and is spelled correctly",
			Err:        err,
		}
	}

	if strings.Contains(errStr, "read-only file system") {
		return UserError{
			Message:    err.Error(),
			Suggestion: "Point --store at a writable location",
			Err:        err,
		}
	}

	// Return original error if we can't simplify it
	return err
}
