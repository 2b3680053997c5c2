package scene

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/toyz/autobind/pkg/autobind"
)

var ownerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/toyz/autobind/owner"))

// OwnerID returns the stable id of the owner at ownerPath in document. It
// only depends on names, so a reloaded scene yields the same ids.
func OwnerID(document, ownerPath string) string {
	return document + "#" + uuid.NewSHA1(ownerNamespace, []byte(ownerPath)).String()
}

// Directory maps the owners of loaded documents to stable ids. It
// implements autobind.IdentityService.
type Directory struct {
	mu   sync.RWMutex
	byID map[string]*autobind.Owner
	ids  map[*autobind.Owner]string
}

// NewDirectory indexes the owners of docs
func NewDirectory(docs ...*Document) *Directory {
	d := &Directory{
		byID: make(map[string]*autobind.Owner),
		ids:  make(map[*autobind.Owner]string),
	}
	for _, doc := range docs {
		d.Add(doc)
	}
	return d
}

// Add indexes doc, replacing owners previously indexed under the same ids
func (d *Directory) Add(doc *Document) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, owner := range doc.Owners() {
		id := OwnerID(doc.Name, doc.OwnerPath(owner))
		if previous, ok := d.byID[id]; ok {
			delete(d.ids, previous)
		}
		d.byID[id] = owner
		d.ids[owner] = id
	}
}

// IDOf returns the id of a known owner, "" otherwise
func (d *Directory) IDOf(owner *autobind.Owner) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ids[owner]
}

// ResolveID returns the live owner for id, nil once it is gone
func (d *Directory) ResolveID(id string) *autobind.Owner {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byID[id]
}

// IDs returns every known id in sorted order
func (d *Directory) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, 0, len(d.byID))
	for id := range d.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
