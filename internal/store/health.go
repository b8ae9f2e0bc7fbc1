package store

import (
	"errors"
	"io/fs"
	"os"
)

// Health is a read-only snapshot of the backing file's condition
type Health struct {
	Path   string
	Exists bool
	Mode   fs.FileMode
	Size   int64
	Keys   int

	// LoadErr is set when the file exists but would be treated as empty
	LoadErr *LoadError
	// Violations lists import-schema problems, such as empty keys
	Violations []string
}

// WorldAccessible reports whether group or other users can access the file
func (h Health) WorldAccessible() bool {
	return h.Exists && h.Mode.Perm()&0o077 != 0
}

// Healthy reports whether the store would load without degradation
func (h Health) Healthy() bool {
	return h.LoadErr == nil
}

// Inspect examines the backing file without modifying it
func (s *Store) Inspect() Health {
	h := Health{Path: s.path}

	info, err := os.Stat(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.LoadErr = &LoadError{Path: s.path, Kind: LoadRead, Err: err}
		}
		return h
	}
	h.Exists = true
	h.Mode = info.Mode()
	h.Size = info.Size()

	secrets, err := s.Load()
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			h.LoadErr = loadErr
		}
		return h
	}
	h.Keys = secrets.Len()

	if data, err := os.ReadFile(s.path); err == nil {
		if violations, verr := ValidateDocument(data); verr == nil {
			h.Violations = violations
		}
	}
	return h
}
