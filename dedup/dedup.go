// Package dedup detects and removes newly downloaded files whose content
// duplicates a file already present in the destination directory.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

const chunkSize = 8 * 1024

// FileHash computes the sha256 hex digest of the file content at the
// given path, reading in fixed-size chunks.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, chunkSize)); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Deduplicate compares the content hash of newPath against every other
// file directly inside destDir (non-recursive, rescanned on every call).
// On the first match it deletes newPath and returns kept=false along with
// the name of the surviving file. The pre-existing file is always the one
// retained.
func Deduplicate(destDir string, newPath string) (kept bool, dupOf string, err error) {
	digest, err := FileHash(newPath)
	if err != nil {
		return false, "", fmt.Errorf("failed to hash %s: %v", newPath, err)
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		return false, "", err
	}

	newName := filepath.Base(newPath)

	for _, e := range entries {
		if e.IsDir() || e.Name() == newName {
			continue
		}

		existing := filepath.Join(destDir, e.Name())
		d, err := FileHash(existing)
		if err != nil {
			// A file that disappeared or can't be read is not a
			// duplicate; keep scanning.
			log.WithError(err).Debugf("failed to hash existing file: %s", existing)
			continue
		}

		if d == digest {
			log.Debugf("duplicate content: %s matches %s", newName, e.Name())
			if err := os.Remove(newPath); err != nil {
				return false, "", err
			}
			return false, e.Name(), nil
		}
	}

	return true, "", nil
}
