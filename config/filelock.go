package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const lockFileName = "state.lock"

// FileLock provides file-based locking for cross-process synchronization.
// It uses a separate lock file rather than locking the data file directly,
// so the data file can be replaced while the lock is held.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a new FileLock for the given path.
// The lock file will be created in the same directory as the given path.
func NewFileLock(path string) *FileLock {
	lockPath := filepath.Join(filepath.Dir(path), lockFileName)
	return &FileLock{
		path: lockPath,
	}
}

// Lock acquires an exclusive lock on the file.
// This blocks until the lock is available.
func (l *FileLock) Lock() error {
	return l.acquire(os.O_CREATE|os.O_RDWR, true)
}

// RLock acquires a shared (read) lock on the file.
// Multiple processes can hold a shared lock simultaneously.
// This blocks until the lock is available.
func (l *FileLock) RLock() error {
	return l.acquire(os.O_CREATE|os.O_RDONLY, false)
}

// Held reports whether this FileLock currently holds a lock.
func (l *FileLock) Held() bool {
	return l.file != nil
}

func (l *FileLock) acquire(flag int, exclusive bool) error {
	if l.file != nil {
		return fmt.Errorf("lock already held")
	}

	f, err := os.OpenFile(l.path, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(f, exclusive); err != nil {
		f.Close()
		kind := "shared"
		if exclusive {
			kind = "exclusive"
		}
		return fmt.Errorf("failed to acquire %s lock: %w", kind, err)
	}

	l.file = f
	return nil
}

// Unlock releases the lock on the file.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	if err := unlockFile(l.file); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}

	l.file = nil
	return nil
}
