// Package presence maps a principal id to its currently-live connection
// handle. A principal with no handle is offline.
package presence

import (
	"sync"

	"stegochat/internal/domain"
)

// Directory is the authoritative map of who is connected right now.
type Directory struct {
	mu      sync.RWMutex
	handles map[domain.PrincipalID]domain.Handle
}

func NewDirectory() *Directory {
	return &Directory{handles: make(map[domain.PrincipalID]domain.Handle)}
}

// Register installs the handle for id. A later Register for the same id
// replaces the previous handle without closing it; closing is the caller's
// responsibility.
func (d *Directory) Register(id domain.PrincipalID, h domain.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handles[id] = h
}

// Unregister removes id's handle. It is idempotent.
func (d *Directory) Unregister(id domain.PrincipalID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.handles, id)
}

// Lookup returns the live handle for id, if any.
func (d *Directory) Lookup(id domain.PrincipalID) (domain.Handle, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.handles[id]
	return h, ok
}
