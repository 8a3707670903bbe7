package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemRoundTrip(t *testing.T) {
	backend, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)

	_, err = backend.Read("livestockData")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Write("livestockData", []byte(`[{"id":"a1"}]`)))
	data, err := backend.Read("livestockData")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a1"}]`, string(data))

	// Overwrite replaces, not appends.
	require.NoError(t, backend.Write("livestockData", []byte(`[]`)))
	data, err = backend.Read("livestockData")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestFilesystemRejectsPathKeys(t *testing.T) {
	backend, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "  ", "../escape", "a/b", `a\b`} {
		assert.Error(t, backend.Write(key, []byte("x")), "key %q", key)
	}
}

func TestFilesystemLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFilesystem(dir)
	require.NoError(t, err)

	require.NoError(t, backend.Write("tasksData", []byte(`[]`)))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasksData.json", entries[0].Name())
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farmkeep.db")
	backend, err := NewSQLite(path)
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Read("financialData")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Write("financialData", []byte(`[{"id":"f1"}]`)))
	require.NoError(t, backend.Write("financialData", []byte(`[{"id":"f2"}]`)))

	data, err := backend.Read("financialData")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"f2"}]`, string(data))
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farmkeep.db")

	backend, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, backend.Write("currency", []byte(`"USD"`)))
	require.NoError(t, backend.Close())

	backend, err = NewSQLite(path)
	require.NoError(t, err)
	defer backend.Close()
	data, err := backend.Read("currency")
	require.NoError(t, err)
	assert.Equal(t, `"USD"`, string(data))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	assert.Error(t, err)
}

func TestOpenDefaultsToFilesystem(t *testing.T) {
	backend, err := Open("", t.TempDir())
	require.NoError(t, err)
	defer backend.Close()
	_, ok := backend.(*Filesystem)
	assert.True(t, ok)
}
