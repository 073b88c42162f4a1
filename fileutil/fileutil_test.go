package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	require.True(t, FileExists(dir))
	require.False(t, FileExists(filepath.Join(dir, "nope")))

	p := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(p, nil, 0644))
	require.True(t, FileExists(p))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, EnsureDir(dir))
	require.DirExists(t, dir)

	// Idempotent.
	require.NoError(t, EnsureDir(dir))
}
