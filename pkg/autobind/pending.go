package autobind

import (
	"strings"
)

// PendingBindIDsKey is the storage key of the persisted pending owner ids
const PendingBindIDsKey = "autobind.PendingBindIds"

const pendingSeparator = ";"

// KeyValueStore is durable string storage that survives a process restart
type KeyValueStore interface {
	Get(key, defaultValue string) string
	Set(key, value string) error
}

// KeyValueUpdater is implemented by stores that can read and replace a
// value atomically. fn receives the current value and returns the new one,
// or false to leave the value untouched.
type KeyValueUpdater interface {
	UpdateKey(key string, fn func(current string) (string, bool)) error
}

// PendingSet is the deduplicated list of owner ids stored under
// PendingBindIDsKey. Every mutation reads the full list and writes it back
// whole, atomically when the store implements KeyValueUpdater.
type PendingSet struct {
	store KeyValueStore
}

// NewPendingSet wraps store
func NewPendingSet(store KeyValueStore) *PendingSet {
	return &PendingSet{store: store}
}

// List returns the pending ids in insertion order
func (p *PendingSet) List() []string {
	return ParsePendingIDs(p.store.Get(PendingBindIDsKey, ""))
}

// Contains reports whether id is pending
func (p *PendingSet) Contains(id string) bool {
	for _, existing := range p.List() {
		if existing == id {
			return true
		}
	}
	return false
}

// update applies fn to the stored list. Nothing is written when fn reports
// no change.
func (p *PendingSet) update(fn func(ids []string) ([]string, bool)) error {
	apply := func(raw string) (string, bool) {
		ids, changed := fn(ParsePendingIDs(raw))
		if !changed {
			return raw, false
		}
		return FormatPendingIDs(ids), true
	}

	if updater, ok := p.store.(KeyValueUpdater); ok {
		return updater.UpdateKey(PendingBindIDsKey, apply)
	}
	value, changed := apply(p.store.Get(PendingBindIDsKey, ""))
	if !changed {
		return nil
	}
	return p.store.Set(PendingBindIDsKey, value)
}

// Add appends ids that are not pending yet and persists once. It returns
// the number of ids added.
func (p *PendingSet) Add(ids ...string) (int, error) {
	added := 0
	err := p.update(func(current []string) ([]string, bool) {
		added = 0
		seen := make(map[string]bool, len(current))
		for _, id := range current {
			seen[id] = true
		}
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			current = append(current, id)
			added++
		}
		return current, added > 0
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// Remove drops ids and persists once. It returns the number removed.
func (p *PendingSet) Remove(ids ...string) (int, error) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	removed := 0
	err := p.update(func(current []string) ([]string, bool) {
		kept := make([]string, 0, len(current))
		for _, id := range current {
			if !drop[id] {
				kept = append(kept, id)
			}
		}
		removed = len(current) - len(kept)
		return kept, removed > 0
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Take returns the pending ids and clears the stored list
func (p *PendingSet) Take() ([]string, error) {
	var taken []string
	err := p.update(func(current []string) ([]string, bool) {
		taken = current
		return nil, len(current) > 0
	})
	if err != nil {
		return nil, err
	}
	return taken, nil
}

// Clear empties the stored list
func (p *PendingSet) Clear() error {
	return p.update(func(current []string) ([]string, bool) {
		return nil, true
	})
}

// ParsePendingIDs splits the stored form, dropping blanks and duplicates
func ParsePendingIDs(raw string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, pendingSeparator) {
		id := strings.TrimSpace(part)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// FormatPendingIDs joins ids into the stored form
func FormatPendingIDs(ids []string) string {
	return strings.Join(ids, pendingSeparator)
}
