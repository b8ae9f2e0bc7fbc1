package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Inspect(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		st := newTestStore(t)
		h := st.Inspect()
		assert.False(t, h.Exists)
		assert.True(t, h.Healthy())
		assert.False(t, h.WorldAccessible())
	})

	t.Run("healthy file", func(t *testing.T) {
		t.Parallel()

		st := newTestStore(t)
		_, err := st.Set("a", "1")
		require.NoError(t, err)

		h := st.Inspect()
		assert.True(t, h.Exists)
		assert.True(t, h.Healthy())
		assert.Equal(t, 1, h.Keys)
		assert.False(t, h.WorldAccessible())
		assert.Empty(t, h.Violations)
	})

	t.Run("world readable non-object", func(t *testing.T) {
		t.Parallel()

		st := newTestStore(t)
		writeFile(t, st.Path(), `["x"]`)
		require.NoError(t, os.Chmod(st.Path(), 0644))

		h := st.Inspect()
		assert.True(t, h.WorldAccessible())
		assert.False(t, h.Healthy())
		require.NotNil(t, h.LoadErr)
		assert.Equal(t, LoadNotObject, h.LoadErr.Kind)

		data, err := os.ReadFile(st.Path())
		require.NoError(t, err)
		assert.Equal(t, `["x"]`, string(data))
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()

		st := newTestStore(t)
		writeFile(t, st.Path(), `{"": "x"}`)

		h := st.Inspect()
		assert.True(t, h.Healthy())
		assert.NotEmpty(t, h.Violations)
	})
}
