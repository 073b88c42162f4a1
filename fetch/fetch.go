// Package fetch downloads images over http(s) and saves them to a local
// directory, enforcing a content-type check and a byte ceiling while
// streaming.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ccollins476ad/imgfetch/fileutil"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
)

const (
	userAgent = "UbuntuImageFetcher/2.0 (community tool)"

	// chunkSize is the buffer size used when streaming response bodies
	// and hashing files.
	chunkSize = 8 * 1024
)

// SavedFile describes a successfully downloaded image.
type SavedFile struct {
	Path         string // Full path of the saved file.
	Filename     string // Base name, relative to the destination directory.
	Bytes        int64  // Number of bytes written.
	LastModified string // Last-modified response header, or "unknown".
}

// Fetcher downloads images into a destination directory. It issues one
// GET per url and never retries.
type Fetcher struct {
	destDir  string
	maxBytes int64
	progress bool

	hc *http.Client
}

func NewFetcher(destDir string, timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		destDir:  destDir,
		maxBytes: maxBytes,
		hc:       &http.Client{Timeout: timeout},
	}
}

// ShowProgress enables a byte progress bar while streaming.
func (f *Fetcher) ShowProgress(on bool) {
	f.progress = on
}

// Fetch downloads the image at the given url and saves it to the
// destination directory under a derived, collision-avoided filename. On
// any failure no file is left behind. The returned error wraps one of the
// package error kinds.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*SavedFile, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http:// and https:// urls are supported (scheme=%q)", ErrInvalidInput, parsed.Scheme)
	}

	if err := fileutil.EnsureDir(f.destDir); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %v", err)
	}

	log.Debugf("get: %s", rawURL)

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", userAgent)

	rsp, err := f.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %v", ErrNetwork, err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: error status: %s", ErrNetwork, rsp.Status)
	}

	ctype := rsp.Header.Get("Content-Type")
	if !strings.HasPrefix(ctype, "image/") {
		return nil, fmt.Errorf("%w: content-type: %s", ErrRejectedContent, ctype)
	}

	// ContentLength is -1 when the server does not declare one; the
	// streaming cap below still guards that case.
	if rsp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w: declared %d bytes, cap %d", ErrTooLarge, rsp.ContentLength, f.maxBytes)
	}

	lastMod := rsp.Header.Get("Last-Modified")
	if lastMod == "" {
		lastMod = "unknown"
	}

	filename := DeriveFilename(rawURL, rsp.Header)
	destPath := AvoidCollision(filepath.Join(f.destDir, filename))

	n, err := f.stream(rsp.Body, destPath, rsp.ContentLength)
	if err != nil {
		return nil, err
	}

	return &SavedFile{
		Path:         destPath,
		Filename:     filepath.Base(destPath),
		Bytes:        n,
		LastModified: lastMod,
	}, nil
}

// stream copies body to destPath through a temp file in the same
// directory, enforcing the byte cap in 8 KiB chunks. The temp file is
// removed on every failure path and renamed into place on success.
func (f *Fetcher) stream(body io.Reader, destPath string, contentLength int64) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".imgfetch-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %v", err)
	}

	var successful bool
	defer func() {
		tmp.Close()
		if !successful {
			if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
				log.WithError(err).Errorf("failed to remove temp file: %s", tmp.Name())
			}
		}
	}()

	cw := &cappedWriter{w: tmp, max: f.maxBytes}

	var dst io.Writer = cw
	if f.progress {
		bar := progressbar.DefaultBytes(contentLength, filepath.Base(destPath))
		defer bar.Close()
		dst = io.MultiWriter(cw, bar)
	}

	if _, err := io.CopyBuffer(dst, body, make([]byte, chunkSize)); err != nil {
		if errors.Is(err, ErrTooLarge) {
			return 0, fmt.Errorf("%w: body exceeds %d bytes", ErrTooLarge, f.maxBytes)
		}
		return 0, fmt.Errorf("%w: failed to read response body: %v", ErrNetwork, err)
	}

	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close temp file: %v", err)
	}
	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return 0, fmt.Errorf("failed to rename temp file: %v", err)
	}

	successful = true
	return cw.n, nil
}

// cappedWriter writes to an underlying writer until a cumulative byte
// ceiling would be exceeded.
type cappedWriter struct {
	w   io.Writer
	max int64
	n   int64
}

func (cw *cappedWriter) Write(p []byte) (int, error) {
	if cw.n+int64(len(p)) > cw.max {
		return 0, ErrTooLarge
	}

	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
