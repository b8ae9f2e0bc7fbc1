package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// importSchema describes an acceptable import document: an object whose
// property names are non-empty.
const importSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "propertyNames": { "minLength": 1 }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func objectSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(importSchema))
	})
	return compiledSchema, schemaErr
}

// ValidateDocument checks data against the import schema and returns one
// message per violation. Callers must pass syntactically valid JSON.
func ValidateDocument(data []byte) ([]string, error) {
	schema, err := objectSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile import schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	var messages []string
	for _, desc := range result.Errors() {
		messages = append(messages, desc.String())
	}
	return messages, nil
}

// ImportStatus tells whether an imported key was new or replaced a value
type ImportStatus string

const (
	StatusAdded   ImportStatus = "added"
	StatusUpdated ImportStatus = "updated"
)

// ImportedKey is one line of an import report
type ImportedKey struct {
	Key    string
	Status ImportStatus
}

// ImportReport describes the outcome of a successful import
type ImportReport struct {
	Source string
	Keys   []ImportedKey
	// Written is false when the import file held no keys and the backing
	// file was left as is.
	Written bool
}

// Count returns the number of imported keys
func (r *ImportReport) Count() int {
	return len(r.Keys)
}

// ReadImportFile parses path as a JSON object of secrets
func ReadImportFile(path string) (*Secrets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ImportError{Path: path, Kind: ImportNotFound, Err: err}
		}
		return nil, &ImportError{Path: path, Kind: ImportRead, Err: err}
	}

	if err := checkObject(data); err != nil {
		var notObject errNotObject
		if errors.As(err, &notObject) {
			return nil, &ImportError{Path: path, Kind: ImportFormat, Err: err, Details: []string{err.Error()}}
		}
		return nil, &ImportError{Path: path, Kind: ImportSyntax, Err: err}
	}

	violations, err := ValidateDocument(data)
	if err != nil {
		return nil, &ImportError{Path: path, Kind: ImportRead, Err: err}
	}
	if len(violations) > 0 {
		return nil, &ImportError{
			Path:    path,
			Kind:    ImportFormat,
			Err:     fmt.Errorf("schema validation failed"),
			Details: violations,
		}
	}

	secrets := NewSecrets()
	if err := secrets.UnmarshalJSON(data); err != nil {
		return nil, &ImportError{Path: path, Kind: ImportSyntax, Err: err}
	}
	return secrets, nil
}

// Import merges the JSON object in path into the store. Imported keys
// overwrite existing ones; other keys are kept. Nothing is written when the
// file is rejected or holds no keys.
func (s *Store) Import(path string) (*ImportReport, error) {
	existing, err := s.load()
	if err != nil {
		return nil, err
	}

	incoming, err := ReadImportFile(path)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Source: path}
	for _, key := range incoming.Keys() {
		status := StatusAdded
		if existing.Has(key) {
			status = StatusUpdated
		}
		report.Keys = append(report.Keys, ImportedKey{Key: key, Status: status})
	}

	if incoming.Len() == 0 {
		s.debug("Import file %s holds no keys, leaving %s untouched", path, s.path)
		return report, nil
	}

	existing.Merge(incoming)
	if err := s.Save(existing); err != nil {
		return nil, err
	}
	report.Written = true
	return report, nil
}

// Export writes the entire store to path as pretty-printed JSON and returns
// the number of secrets written.
func (s *Store) Export(path string) (int, error) {
	secrets, err := s.load()
	if err != nil {
		return 0, err
	}

	data, err := secrets.encode()
	if err != nil {
		return 0, &SaveError{Path: path, Err: err}
	}
	if err := writeFileAtomic(path, data, false); err != nil {
		return 0, &SaveError{Path: path, Err: err}
	}
	s.debug("Exported %d secret(s) to %s", secrets.Len(), path)
	return secrets.Len(), nil
}
