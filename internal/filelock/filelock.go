// Package filelock guards a run against concurrent runs and writes marker
// files without ever leaving a half-written one behind.
package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by Acquire when another process holds the lock
var ErrLocked = errors.New("lock is held by another process")

// FileLock wraps a flock file lock
type FileLock struct {
	flock *flock.Flock
	path  string
}

// New creates a lock backed by the file at path. Nothing is touched on disk
// until the lock is taken.
func New(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path
func (fl *FileLock) Path() string {
	return fl.path
}

// Acquire takes the lock without blocking. It returns ErrLocked when another
// process already holds it.
func (fl *FileLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(fl.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for lock %s: %w", fl.path, err)
	}
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	if !acquired {
		return fmt.Errorf("%s: %w", fl.path, ErrLocked)
	}
	return nil
}

// Release releases the lock
func (fl *FileLock) Release() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// Locked reports whether this handle currently holds the lock
func (fl *FileLock) Locked() bool {
	return fl.flock.Locked()
}

// DefaultPath returns the lock file used when none is configured, under the
// user's cache directory.
func DefaultPath(app string) string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, app, "run.lock")
}

// AtomicWrite writes data to path through a temporary file in the same
// directory followed by a rename, so path either keeps its old state or
// holds all of data. The parent directory must exist.
func AtomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}
