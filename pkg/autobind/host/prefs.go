// Package host contains a file backed implementation of the collaborators
// the scheduler needs: durable prefs, a build lock and a tick loop.
package host

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/toyz/autobind/internal/errors"
)

// DefaultPrefsFile is the prefs file name
const DefaultPrefsFile = "prefs.yaml"

// ProjectPrefsPath returns <root>/.autobind/prefs.yaml, the prefs file shared
// by the CLI and a host running from the same project
func ProjectPrefsPath(root string) string {
	return filepath.Join(root, ".autobind", DefaultPrefsFile)
}

// FilePrefs is a string map stored as YAML. Every access takes a lock on a
// sibling ".lock" file, and writes replace the whole document, so a CLI and a
// host process sharing the file never see a partial update.
type FilePrefs struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

// NewFilePrefs opens (lazily) the prefs file at path
func NewFilePrefs(path string) *FilePrefs {
	return &FilePrefs{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the prefs file location
func (p *FilePrefs) Path() string {
	return p.path
}

// Get returns the value for key, or defaultValue when it is unset or the
// file cannot be read
func (p *FilePrefs) Get(key, defaultValue string) string {
	values, err := p.Load()
	if err != nil {
		return defaultValue
	}
	if v, ok := values[key]; ok {
		return v
	}
	return defaultValue
}

// Set stores value under key
func (p *FilePrefs) Set(key, value string) error {
	return p.Update(func(values map[string]string) {
		values[key] = value
	})
}

// Delete removes key
func (p *FilePrefs) Delete(key string) error {
	return p.Update(func(values map[string]string) {
		delete(values, key)
	})
}

// Keys returns the stored keys in sorted order
func (p *FilePrefs) Keys() ([]string, error) {
	values, err := p.Load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Load reads the whole map under a shared lock. A missing file is empty.
func (p *FilePrefs) Load() (map[string]string, error) {
	if err := p.ensureDir(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.lock.RLock(); err != nil {
		return nil, errors.WrapFileSystemError("lock", p.lock.Path(), err)
	}
	defer p.lock.Unlock()

	return p.read()
}

// Update runs fn on the current map and writes the result back while
// holding the exclusive lock
func (p *FilePrefs) Update(fn func(values map[string]string)) error {
	return p.update(func(values map[string]string) bool {
		fn(values)
		return true
	})
}

// UpdateKey replaces the value of key with the result of fn under the
// exclusive lock. A missing key reads as "". When fn reports no change the
// file is not rewritten.
func (p *FilePrefs) UpdateKey(key string, fn func(current string) (string, bool)) error {
	return p.update(func(values map[string]string) bool {
		next, changed := fn(values[key])
		if changed {
			values[key] = next
		}
		return changed
	})
}

func (p *FilePrefs) update(fn func(values map[string]string) bool) error {
	if err := p.ensureDir(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.lock.Lock(); err != nil {
		return errors.WrapFileSystemError("lock", p.lock.Path(), err)
	}
	defer p.lock.Unlock()

	values, err := p.read()
	if err != nil {
		return err
	}
	if !fn(values) {
		return nil
	}
	return p.write(values)
}

func (p *FilePrefs) ensureDir() error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapFileSystemError("create directory", dir, err)
	}
	return nil
}

func (p *FilePrefs) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, errors.WrapFileSystemError("read", p.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, errors.WrapFileSystemError("parse", p.path, err)
	}
	return values, nil
}

func (p *FilePrefs) write(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return errors.WrapFileSystemError("encode", p.path, err)
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.WrapFileSystemError("write", tmp, err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		os.Remove(tmp)
		return errors.WrapFileSystemError("replace", p.path, err)
	}
	return nil
}
