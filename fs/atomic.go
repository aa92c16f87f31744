// Package fs provides file storage with atomic replacement and page dumps
// for debugging extraction.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicFile writes to a temporary file next to the target and replaces the
// target on Commit, so readers never see a partially written dataset.
type AtomicFile struct {
	path string
	tmp  *os.File
	done bool
}

// CreateAtomic opens a temporary file in the target's directory, creating
// the directory if needed.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &AtomicFile{path: path, tmp: tmp}, nil
}

// Write writes to the temporary file.
func (f *AtomicFile) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Commit flushes the temporary file and renames it over the target.
func (f *AtomicFile) Commit() error {
	if f.done {
		return fmt.Errorf("atomic file %s already closed", f.path)
	}
	f.done = true

	if err := f.tmp.Sync(); err != nil {
		_ = f.tmp.Close()
		_ = os.Remove(f.tmp.Name())
		return err
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(f.tmp.Name())
		return err
	}
	if err := os.Chmod(f.tmp.Name(), 0o644); err != nil {
		_ = os.Remove(f.tmp.Name())
		return err
	}
	return os.Rename(f.tmp.Name(), f.path)
}

// Abort discards the temporary file. Abort after Commit is a no-op, so it
// can be deferred.
func (f *AtomicFile) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	_ = f.tmp.Close()
	return os.Remove(f.tmp.Name())
}
