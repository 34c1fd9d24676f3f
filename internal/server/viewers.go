package server

import (
	"fmt"
	"sync"
	"time"
)

// Viewers tracks connected sessions by username and remembers each
// username's toggles across reconnects.
type Viewers struct {
	mu     sync.RWMutex
	online map[string]string // id -> username
	saved  map[string]Prefs  // keyed by username
}

// NewViewers creates an empty registry.
func NewViewers() *Viewers {
	return &Viewers{
		online: make(map[string]string),
		saved:  make(map[string]Prefs),
	}
}

// Add registers a viewer using their username as identity. If the username
// is already online a suffix is added. The saved prefs for the username are
// returned when known.
func (v *Viewers) Add(name string) (id string, prefs Prefs, restored bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id = name
	if _, online := v.online[id]; online {
		id = fmt.Sprintf("%s_%04d", name, time.Now().UnixNano()%10000)
	}
	v.online[id] = name

	prefs, restored = v.saved[name]
	return id, prefs, restored
}

// Remove saves the viewer's prefs and unregisters them.
func (v *Viewers) Remove(id string, prefs Prefs) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if name, ok := v.online[id]; ok {
		v.saved[name] = prefs
		delete(v.online, id)
	}
}

// Count returns the number of connected viewers.
func (v *Viewers) Count() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.online)
}
