package configstore

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// storeUnderTest runs the shared contract tests against one backend.
func storeUnderTest(t *testing.T, store Store) {
	t.Helper()

	const path = `SOFTWARE\Microsoft\Enrollments\1f0b01f9-9f62-4f98-9c5e-1a2b3c4d5e6f`

	_, err := store.Get(path, "ProviderID")
	assert.ErrorIs(t, err, interfaces.ErrKeyNotFound)

	require.NoError(t, store.Set(path, "ProviderID", "MS DM Server"))

	got, err := store.Get(path, "ProviderID")
	require.NoError(t, err)
	assert.Equal(t, "MS DM Server", got)

	_, err = store.Get(path, "NoSuchValue")
	assert.ErrorIs(t, err, interfaces.ErrValueNotFound)

	// Overwrite in place.
	require.NoError(t, store.Set(path, "ProviderID", "other"))
	got, err = store.Get(path, "ProviderID")
	require.NoError(t, err)
	assert.Equal(t, "other", got)

	names, err := store.List(`SOFTWARE\Microsoft\Enrollments`)
	require.NoError(t, err)
	require.Len(t, names, 1)

	_, err = store.List(`SOFTWARE\Microsoft\NoSuchKey`)
	assert.ErrorIs(t, err, interfaces.ErrKeyNotFound)
}

func TestMemoryStoreContract(t *testing.T) {
	storeUnderTest(t, NewMemoryStore())
}

func TestFileStoreContract(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)
	storeUnderTest(t, store)
}

func TestMemoryStorePathsAreCaseInsensitive(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(`Software\Test`, "Name", "value"))

	got, err := store.Get(`SOFTWARE\TEST`, "Name")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestMemoryStoreListSorted(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(`root\bbb`, "v", "1"))
	require.NoError(t, store.Set(`root\aaa`, "v", "1"))
	require.NoError(t, store.Set(`root\aaa\nested`, "v", "1"))

	names, err := store.List(`root`)
	require.NoError(t, err)
	assert.Equal(t, []string{"aaa", "bbb"}, names)
}
