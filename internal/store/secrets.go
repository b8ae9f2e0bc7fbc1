package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Secrets is the in-memory form of the backing file. Keys keep the order in
// which they appear in the file; new keys are appended. Values are held as
// raw JSON so numbers and nested structures survive a load/save cycle
// byte-for-byte in meaning.
type Secrets struct {
	m *orderedmap.OrderedMap[string, json.RawMessage]
}

// NewSecrets returns an empty set of secrets
func NewSecrets() *Secrets {
	return &Secrets{m: orderedmap.New[string, json.RawMessage]()}
}

// Len returns the number of entries
func (s *Secrets) Len() int {
	return s.m.Len()
}

// Has reports whether key is present, including keys holding null
func (s *Secrets) Has(key string) bool {
	_, ok := s.m.Get(key)
	return ok
}

// Get returns the decoded value for key
func (s *Secrets) Get(key string) (any, bool) {
	raw, ok := s.m.Get(key)
	if !ok {
		return nil, false
	}
	return decodeValue(raw), true
}

// Set stores value under key and reports whether an existing entry was replaced
func (s *Secrets) Set(key string, value any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	raw, err := encodeValue(value)
	if err != nil {
		return false, fmt.Errorf("cannot encode value for '%s': %w", key, err)
	}
	_, existed := s.m.Set(key, raw)
	return existed, nil
}

// Delete removes key and reports whether it was present
func (s *Secrets) Delete(key string) bool {
	_, ok := s.m.Delete(key)
	return ok
}

// Keys returns the keys in iteration order
func (s *Secrets) Keys() []string {
	keys := make([]string, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// All yields every entry with its decoded value in iteration order
func (s *Secrets) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, decodeValue(pair.Value)) {
				return
			}
		}
	}
}

// Merge copies every entry of other into s, overwriting same-named keys
func (s *Secrets) Merge(other *Secrets) {
	for pair := other.m.Oldest(); pair != nil; pair = pair.Next() {
		s.m.Set(pair.Key, pair.Value)
	}
}

// MarshalJSON encodes the secrets as a JSON object in iteration order
func (s *Secrets) MarshalJSON() ([]byte, error) {
	return s.m.MarshalJSON()
}

// UnmarshalJSON replaces the contents with the entries of a JSON object.
// Invalid UTF-8 sequences are replaced with U+FFFD instead of failing.
func (s *Secrets) UnmarshalJSON(data []byte) error {
	data = sanitizeUTF8(data)
	if err := checkObject(data); err != nil {
		return err
	}
	m := orderedmap.New[string, json.RawMessage]()
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	s.m = m
	return nil
}

// encode renders the secrets the way the backing file stores them
func (s *Secrets) encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	return bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
}

func encodeValue(value any) (json.RawMessage, error) {
	if raw, ok := value.(json.RawMessage); ok {
		if !json.Valid(raw) {
			return nil, fmt.Errorf("invalid raw JSON value")
		}
		return raw, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// decodeValue turns raw JSON into string, bool, nil, json.Number,
// []any or map[string]any. Numbers stay json.Number so large integers are
// not rounded through float64.
func decodeValue(raw json.RawMessage) any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	return v
}

// errNotObject is returned when valid JSON has a non-object top level
type errNotObject struct {
	found string
}

func (e errNotObject) Error() string {
	return fmt.Sprintf("top-level JSON value is %s, not an object", e.found)
}

// checkObject validates the syntax of data and that its top-level value
// is an object.
func checkObject(data []byte) error {
	if !json.Valid(data) {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		return fmt.Errorf("invalid JSON")
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch trimmed[0] {
	case '{':
		return nil
	case '[':
		return errNotObject{found: "an array"}
	case 'n':
		return errNotObject{found: "null"}
	case '"':
		return errNotObject{found: "a string"}
	case 't', 'f':
		return errNotObject{found: "a boolean"}
	default:
		return errNotObject{found: "a number"}
	}
}
