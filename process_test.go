package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *Config {
	return &Config{
		DestDir:  dir,
		Timeout:  5 * time.Second,
		MaxBytes: defaultMaxBytes,
	}
}

func TestProcessURLs(t *testing.T) {
	content := bytes.Repeat([]byte{0x11, 0x22}, 250)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(content)
	}))
	defer server.Close()

	t.Run("identical content under two urls keeps one file", func(t *testing.T) {
		dir := t.TempDir()

		sum := processURLs(context.Background(), testConfig(dir), []string{
			server.URL + "/a.jpg",
			server.URL + "/b.jpg",
		})

		require.Equal(t, Summary{Saved: 1, Skipped: 1}, sum)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "a.jpg", entries[0].Name())
	})

	t.Run("one bad url does not stop the batch", func(t *testing.T) {
		dir := t.TempDir()

		sum := processURLs(context.Background(), testConfig(dir), []string{
			"ftp://example.com/a.jpg",
			server.URL + "/a.jpg",
		})

		require.Equal(t, Summary{Saved: 1, Failed: 1}, sum)
		require.FileExists(t, filepath.Join(dir, "a.jpg"))
	})
}
