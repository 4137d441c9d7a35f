package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndOpen(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	n, err := store.Save("faktura-key", strings.NewReader("pdf contents"))
	require.NoError(t, err)
	require.EqualValues(t, len("pdf contents"), n)

	rc, err := store.Open("faktura-key")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "pdf contents", string(data))
}

func TestDiskStore_Delete(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("key", strings.NewReader("data"))
	require.NoError(t, err)

	require.NoError(t, store.Delete("key"))

	_, err = store.Open("key")
	require.Error(t, err)

	// Deleting again is not an error.
	require.NoError(t, store.Delete("key"))
}

func TestDiskStore_KeyCannotEscapeBaseDir(t *testing.T) {
	base := t.TempDir()
	store, err := NewDiskStore(base)
	require.NoError(t, err)

	_, err = store.Save("../escaped", strings.NewReader("data"))
	require.NoError(t, err)

	// The blob landed inside the base directory, not next to it.
	_, statErr := os.Stat(filepath.Join(base, "escaped"))
	require.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(filepath.Dir(base), "escaped"))
	require.True(t, os.IsNotExist(statErr))
}

func TestDiskStore_CreatesBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "attachments")

	_, err := NewDiskStore(base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
