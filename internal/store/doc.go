// Package store implements the file-backed secret store used by mkv.
//
// The whole store lives in a single JSON object on disk. Every operation is
// a full load, an optional in-memory mutation and, when something changed, a
// full rewrite of the backing file:
//
//	st := store.New("secrets.json", logger)
//	if _, err := st.Set("API_KEY", "sk-123"); err != nil {
//	    // report the error
//	}
//	value, err := st.Get("API_KEY")
//
// # Backing file
//
// The backing file is created lazily by the first successful Set or Import
// and is never deleted. A missing file is an empty store. Writes go through
// a temporary file in the same directory followed by a rename, so readers
// observe either the old or the new content.
//
// # Degraded loads
//
// A backing file that cannot be read, is not valid JSON, or whose top-level
// value is not an object produces a *LoadError. The store hands that error to
// its degraded-load handler: the default handler logs it and continues with
// an empty store, while WithStrict aborts the operation instead.
//
// There is no locking. Two processes writing the same file race and the
// last writer wins.
package store
