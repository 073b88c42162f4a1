package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractURLs(t *testing.T) {
	text := `urls scraped earlier:
https://example.com/a.jpg some trailing notes
see also http://example.com/img/b.png, plus garbage tokens`

	urls := extractURLs(text)
	require.Equal(t, []string{
		"https://example.com/a.jpg",
		"http://example.com/img/b.png",
	}, urls)
}

func TestExtractURLsEmpty(t *testing.T) {
	require.Empty(t, extractURLs("no links in here"))
}

func TestURLsFromFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(p, []byte("http://example.com/a.jpg\nhttp://example.com/b.jpg\n"), 0644))

	urls, err := urlsFromFile(p)
	require.NoError(t, err)
	require.Len(t, urls, 2)
}

func TestURLsFromFileMissing(t *testing.T) {
	_, err := urlsFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
