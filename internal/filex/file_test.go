package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesAncestors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "session.json")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "session.json")

	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, EnsureParentDir(path))
}

func TestReadFileWithSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	data, size, err := ReadFileWithSize(path)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)
	require.Equal(t, int64(5), size)
}

func TestReadFileWithSize_Missing(t *testing.T) {
	_, _, err := ReadFileWithSize(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
