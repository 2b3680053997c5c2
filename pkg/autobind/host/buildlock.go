package host

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/toyz/autobind/internal/errors"
)

// DefaultBuildLockFile is the lock file name used under the project root
const DefaultBuildLockFile = ".autobind.build.lock"

// BuildLock is held exclusively while the host rebuilds. Other processes
// treat the host as busy while they cannot take a shared lock on it.
type BuildLock struct {
	path string
}

// NewBuildLock uses the lock file at path
func NewBuildLock(path string) *BuildLock {
	return &BuildLock{path: path}
}

// Path returns the lock file location
func (b *BuildLock) Path() string {
	return b.path
}

// Acquire takes the exclusive lock, blocking until it is free. The returned
// func releases it.
func (b *BuildLock) Acquire() (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return nil, errors.WrapFileSystemError("create directory", filepath.Dir(b.path), err)
	}

	lock := flock.New(b.path)
	if err := lock.Lock(); err != nil {
		return nil, errors.WrapFileSystemError("lock", b.path, err)
	}
	return lock.Unlock, nil
}

// Hold runs fn while holding the exclusive lock
func (b *BuildLock) Hold(fn func() error) (err error) {
	release, err := b.Acquire()
	if err != nil {
		return err
	}
	defer func() {
		if unlockErr := release(); unlockErr != nil && err == nil {
			err = errors.WrapFileSystemError("unlock", b.path, unlockErr)
		}
	}()
	return fn()
}

// IsBusy reports whether another holder has the exclusive lock. A missing
// lock directory means nobody is building.
func (b *BuildLock) IsBusy() bool {
	if _, err := os.Stat(filepath.Dir(b.path)); err != nil {
		return false
	}

	shared := flock.New(b.path)
	locked, err := shared.TryRLock()
	if err != nil {
		return true
	}
	if locked {
		shared.Unlock()
		return false
	}
	return true
}
