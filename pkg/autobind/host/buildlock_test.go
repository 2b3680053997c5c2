package host

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLock_BusyWhileHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultBuildLockFile)
	builder := NewBuildLock(path)
	observer := NewBuildLock(path)

	assert.False(t, observer.IsBusy())

	release, err := builder.Acquire()
	require.NoError(t, err)
	assert.True(t, observer.IsBusy())

	require.NoError(t, release())
	assert.False(t, observer.IsBusy())
}

func TestBuildLock_Hold(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultBuildLockFile)
	builder := NewBuildLock(path)
	observer := NewBuildLock(path)

	var busyInside bool
	err := builder.Hold(func() error {
		busyInside = observer.IsBusy()
		return errors.New("build failed")
	})

	assert.EqualError(t, err, "build failed")
	assert.True(t, busyInside)
	assert.False(t, observer.IsBusy(), "lock is released even when the build fails")
}

func TestBuildLock_MissingDirectoryIsIdle(t *testing.T) {
	lock := NewBuildLock(filepath.Join(t.TempDir(), "absent", DefaultBuildLockFile))
	assert.False(t, lock.IsBusy())
}
