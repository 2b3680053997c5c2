package host

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autobind/pkg/autobind"
)

func TestFilePrefs_GetSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	prefs := NewFilePrefs(path)

	assert.Equal(t, "fallback", prefs.Get("missing", "fallback"))

	require.NoError(t, prefs.Set("autobind.PendingBindIds", "a;b"))
	require.NoError(t, prefs.Set("other", "1"))
	assert.Equal(t, "a;b", prefs.Get("autobind.PendingBindIds", ""))

	// a second handle sees the same file
	reopened := NewFilePrefs(path)
	assert.Equal(t, "1", reopened.Get("other", ""))

	keys, err := reopened.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"autobind.PendingBindIds", "other"}, keys)

	require.NoError(t, reopened.Delete("other"))
	assert.Equal(t, "gone", prefs.Get("other", "gone"))
}

func TestFilePrefs_CorruptFileFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o644))

	prefs := NewFilePrefs(path)
	assert.Equal(t, "default", prefs.Get("key", "default"))
	assert.Error(t, prefs.Set("key", "value"))
}

func TestFilePrefs_ConcurrentUpdatesDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	const workers, increments = 4, 10
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prefs := NewFilePrefs(path) // separate lock handle per worker
			for i := 0; i < increments; i++ {
				err := prefs.Update(func(values map[string]string) {
					n, _ := strconv.Atoi(values["counter"])
					values["counter"] = strconv.Itoa(n + 1)
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, strconv.Itoa(workers*increments), NewFilePrefs(path).Get("counter", ""))
}

var _ autobind.KeyValueUpdater = (*FilePrefs)(nil)

func TestFilePrefs_BacksPendingSet(t *testing.T) {
	prefs := NewFilePrefs(filepath.Join(t.TempDir(), "prefs.yaml"))
	pending := autobind.NewPendingSet(prefs)

	_, err := pending.Add("scene#1", "scene#2")
	require.NoError(t, err)
	assert.Equal(t, "scene#1;scene#2", prefs.Get(autobind.PendingBindIDsKey, ""))

	ids, err := pending.Take()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Empty(t, pending.List())
}

// lockedStep runs step while the prefs lock of the wrapped update is held
type lockedStep struct {
	*FilePrefs
	step func()
}

func (l lockedStep) UpdateKey(key string, fn func(string) (string, bool)) error {
	return l.FilePrefs.UpdateKey(key, func(current string) (string, bool) {
		l.step()
		return fn(current)
	})
}

func TestPendingSet_ConcurrentProcessesKeepEachOthersIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, NewFilePrefs(path).Set(autobind.PendingBindIDsKey, "scene#host-owner"))

	cli := autobind.NewPendingSet(NewFilePrefs(path))
	done := make(chan error, 1)
	host := autobind.NewPendingSet(lockedStep{
		FilePrefs: NewFilePrefs(path),
		step: func() {
			go func() {
				_, err := cli.Add("scene#new-owner")
				done <- err
			}()
			time.Sleep(50 * time.Millisecond)
		},
	})

	removed, err := host.Remove("scene#host-owner")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.NoError(t, <-done)

	assert.Equal(t, []string{"scene#new-owner"}, cli.List())
}

func TestFilePrefs_UpdateKeyUnchangedSkipsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	prefs := NewFilePrefs(path)

	require.NoError(t, prefs.UpdateKey("key", func(current string) (string, bool) {
		assert.Empty(t, current)
		return "", false
	}))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, prefs.UpdateKey("key", func(current string) (string, bool) {
		return current + "a", true
	}))
	assert.Equal(t, "a", prefs.Get("key", ""))
}

func TestProjectPrefsPath(t *testing.T) {
	assert.Equal(t, filepath.Join("game", ".autobind", DefaultPrefsFile), ProjectPrefsPath("game"))
}
