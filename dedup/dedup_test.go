package dedup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir string, name string, content []byte) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, content, 0644))
	return p
}

func TestFileHash(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "hello.txt", []byte("hello"))

	digest, err := FileHash(p)
	require.NoError(t, err)
	require.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", digest)
}

func TestFileHashMissingFile(t *testing.T) {
	_, err := FileHash(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestDeduplicate(t *testing.T) {
	content := []byte("image bytes")

	t.Run("removes duplicate, keeps pre-existing file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.jpg", content)
		newPath := writeFile(t, dir, "b.jpg", content)

		kept, dupOf, err := Deduplicate(dir, newPath)
		require.NoError(t, err)
		require.False(t, kept)
		require.Equal(t, "a.jpg", dupOf)

		// a.jpg survives, b.jpg is gone.
		require.FileExists(t, filepath.Join(dir, "a.jpg"))
		require.NoFileExists(t, newPath)
	})

	t.Run("keeps distinct content", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.jpg", content)
		newPath := writeFile(t, dir, "b.jpg", []byte("different bytes"))

		kept, dupOf, err := Deduplicate(dir, newPath)
		require.NoError(t, err)
		require.True(t, kept)
		require.Empty(t, dupOf)
		require.FileExists(t, newPath)
	})

	t.Run("sole file in directory is kept", func(t *testing.T) {
		dir := t.TempDir()
		newPath := writeFile(t, dir, "a.jpg", content)

		kept, _, err := Deduplicate(dir, newPath)
		require.NoError(t, err)
		require.True(t, kept)
	})

	t.Run("scan is non-recursive", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "sub")
		require.NoError(t, os.Mkdir(sub, 0755))
		writeFile(t, sub, "a.jpg", content)

		newPath := writeFile(t, dir, "b.jpg", content)

		kept, _, err := Deduplicate(dir, newPath)
		require.NoError(t, err)
		require.True(t, kept)
		require.FileExists(t, newPath)
	})
}
