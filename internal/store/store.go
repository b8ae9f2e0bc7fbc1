package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/systmms/mkv/internal/logging"
)

// DegradedLoadHandler decides what happens when the backing file exists but
// cannot be loaded. Returning nil continues the operation with an empty
// store; returning an error aborts it with that error.
type DegradedLoadHandler func(err *LoadError) error

// Option configures a Store
type Option func(*Store)

// WithDegradedLoadHandler replaces the default log-and-continue handler
func WithDegradedLoadHandler(h DegradedLoadHandler) Option {
	return func(s *Store) {
		s.onDegraded = h
	}
}

// WithStrict makes every degraded load abort the operation
func WithStrict(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// Store is a file-backed mapping from keys to JSON values
type Store struct {
	path       string
	logger     *logging.Logger
	strict     bool
	onDegraded DegradedLoadHandler
}

// New creates a store backed by the file at path. The file is not touched
// until the first operation.
func New(path string, logger *logging.Logger, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file. A missing file yields empty secrets and no
// error. For any other failure the returned secrets are empty but usable and
// the error is a *LoadError.
func (s *Store) Load() (*Secrets, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.debug("Backing file %s does not exist, starting empty", s.path)
			return NewSecrets(), nil
		}
		return NewSecrets(), &LoadError{Path: s.path, Kind: LoadRead, Err: err}
	}

	if !utf8.Valid(data) && s.logger != nil {
		s.logger.Warn("Backing file %s contains invalid UTF-8; the bad bytes are read as U+FFFD", s.path)
	}

	secrets := NewSecrets()
	if err := secrets.UnmarshalJSON(data); err != nil {
		kind := LoadSyntax
		var notObject errNotObject
		if errors.As(err, &notObject) {
			kind = LoadNotObject
		}
		return NewSecrets(), &LoadError{Path: s.path, Kind: kind, Err: err}
	}

	s.debug("Loaded %d secret(s) from %s", secrets.Len(), s.path)
	return secrets, nil
}

// Save overwrites the backing file with secrets
func (s *Store) Save(secrets *Secrets) error {
	data, err := secrets.encode()
	if err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	if err := writeFileAtomic(s.path, data, true); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	s.debug("Saved %d secret(s) to %s", secrets.Len(), s.path)
	return nil
}

// load runs Load and routes a degraded result through the handler
func (s *Store) load() (*Secrets, error) {
	secrets, err := s.Load()
	if err == nil {
		return secrets, nil
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		return nil, err
	}
	if s.onDegraded != nil {
		if herr := s.onDegraded(loadErr); herr != nil {
			return nil, herr
		}
	}
	if s.strict {
		return nil, loadErr
	}
	if s.onDegraded == nil && s.logger != nil {
		s.logger.Error("%v", loadErr)
	}
	return secrets, nil
}

// Set inserts or overwrites key and persists the store. It reports whether
// an existing value was replaced.
func (s *Store) Set(key string, value any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	secrets, err := s.load()
	if err != nil {
		return false, err
	}
	updated, err := secrets.Set(key, value)
	if err != nil {
		return false, err
	}
	s.debug("Setting %s = %s", key, logging.Secret(fmt.Sprint(value)))
	if err := s.Save(secrets); err != nil {
		return false, err
	}
	return updated, nil
}

// Get returns the value stored under key or ErrNotFound
func (s *Store) Get(key string) (any, error) {
	secrets, err := s.load()
	if err != nil {
		return nil, err
	}
	value, ok := secrets.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return value, nil
}

// Delete removes key and persists the store. An absent key yields
// ErrNotFound and the backing file is left untouched.
func (s *Store) Delete(key string) error {
	secrets, err := s.load()
	if err != nil {
		return err
	}
	if !secrets.Delete(key) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return s.Save(secrets)
}

// List returns the current contents of the store
func (s *Store) List() (*Secrets, error) {
	return s.load()
}

func (s *Store) debug(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(format, args...)
	}
}
