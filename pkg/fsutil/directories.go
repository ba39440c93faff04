// Package fsutil provides utility functions and constants for file system operations.
package fsutil

import (
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and all necessary parent directories with
// default permissions if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// DirStats walks dir and returns the total size in bytes and the number of
// regular files below it. A missing directory yields zero values, not an
// error.
func DirStats(dir string) (size int64, count int, err error) {
	if _, err = os.Stat(dir); os.IsNotExist(err) {
		return 0, 0, nil
	}

	err = filepath.Walk(dir, func(_ string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			size += info.Size()
			count++
		}
		return nil
	})
	return size, count, err
}

// RecreateDir removes dir (if present) and creates it again empty, so that
// callers always start from a clean directory.
func RecreateDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return EnsureDir(dir)
}
