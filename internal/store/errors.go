package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by Get and Delete when the key does not exist.
	ErrNotFound = errors.New("secret not found")

	// ErrEmptyKey is returned by Set for an empty key.
	ErrEmptyKey = errors.New("secret key must not be empty")
)

// LoadErrorKind classifies why the backing file could not be loaded
type LoadErrorKind int

const (
	LoadRead LoadErrorKind = iota
	LoadSyntax
	LoadNotObject
)

func (k LoadErrorKind) String() string {
	switch k {
	case LoadSyntax:
		return "invalid JSON"
	case LoadNotObject:
		return "not a JSON object"
	default:
		return "read failure"
	}
}

// LoadError reports a backing file that exists but could not be used.
// The store treats it as empty for the current operation unless the
// degraded-load handler decides otherwise.
type LoadError struct {
	Path string
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading secrets from '%s' (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SaveError reports a failed write of the backing file or an export target
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("error saving secrets to '%s': %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// ImportErrorKind classifies why an import file was rejected
type ImportErrorKind int

const (
	ImportNotFound ImportErrorKind = iota
	ImportSyntax
	ImportFormat
	ImportRead
)

// ImportError reports an import file that was rejected before any write
type ImportError struct {
	Path    string
	Kind    ImportErrorKind
	Err     error
	Details []string
}

func (e *ImportError) Error() string {
	switch e.Kind {
	case ImportNotFound:
		return fmt.Sprintf("file not found at '%s'", e.Path)
	case ImportSyntax:
		return fmt.Sprintf("invalid JSON format in file '%s': %v", e.Path, e.Err)
	case ImportFormat:
		msg := fmt.Sprintf("the input file '%s' must contain a valid JSON object (key-value pairs)", e.Path)
		if len(e.Details) > 0 {
			msg += ": " + strings.Join(e.Details, "; ")
		}
		return msg
	default:
		return fmt.Sprintf("error reading or parsing file '%s': %v", e.Path, e.Err)
	}
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
