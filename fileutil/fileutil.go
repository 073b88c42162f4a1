package fileutil

import "os"

// FileExists returns true if a file or directory with the given path exists.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// EnsureDir creates the given directory along with any missing parents.
// It is a no-op if the directory already exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
