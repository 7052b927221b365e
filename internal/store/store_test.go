package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backendUnderTest exercises the Backend contract shared by all backends.
func backendUnderTest(t *testing.T, b Backend) {
	t.Helper()

	_, found, err := b.Load()
	require.NoError(t, err)
	assert.False(t, found, "fresh backend should have no blob")

	require.NoError(t, b.Save([]byte(`{"credits": 30}`)))

	data, found, err := b.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"credits": 30}`, string(data))

	// Saves overwrite rather than append.
	require.NoError(t, b.Save([]byte(`{"credits": 27}`)))
	data, found, err = b.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"credits": 27}`, string(data))
}

func TestFileBackend(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	defer b.Close()

	backendUnderTest(t, b)

	// Blob lands under the fixed storage key.
	_, err = os.Stat(filepath.Join(dir, StorageKey+".json"))
	assert.NoError(t, err)
}

func TestFileBackend_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Save([]byte(`{}`)))
	_, found, err := b.Load()
	require.NoError(t, err)
	assert.True(t, found)
}

func TestFileBackend_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, b.Save([]byte(`{"name": "Ada"}`)))
	require.NoError(t, b.Close())

	reopened, err := NewFileBackend(dir)
	require.NoError(t, err)
	defer reopened.Close()

	data, found, err := reopened.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"name": "Ada"}`, string(data))
}

func TestSQLiteBackend(t *testing.T) {
	b, err := NewSQLiteBackend(":memory:")
	require.NoError(t, err)
	defer b.Close()

	backendUnderTest(t, b)
}

func TestSQLiteBackend_SurvivesReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "coach.db")
	b, err := NewSQLiteBackend(dsn)
	require.NoError(t, err)
	require.NoError(t, b.Save([]byte(`{"name": "Ada"}`)))
	require.NoError(t, b.Close())

	reopened, err := NewSQLiteBackend(dsn)
	require.NoError(t, err)
	defer reopened.Close()

	data, found, err := reopened.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"name": "Ada"}`, string(data))
}
