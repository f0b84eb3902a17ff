package layout

import (
	"fmt"
	"sync"
)

// Views is the registry of mounted views. Its lifetime is the lifetime of the
// server that owns it; close a view when its page unmounts.
type Views struct {
	mu    sync.RWMutex
	views map[string]*View
}

// NewViews creates an empty registry
func NewViews() *Views {
	return &Views{views: make(map[string]*View)}
}

// Open mounts a new view under id
func (r *Views) Open(id string, params Params, containerWidth, viewportHeight float64) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.views[id]; exists {
		return nil, fmt.Errorf("view %s already open", id)
	}

	v := NewView(id, params, containerWidth, viewportHeight)
	r.views[id] = v
	return v, nil
}

// Get returns the view registered under id
func (r *Views) Get(id string) (*View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[id]
	return v, ok
}

// Close unmounts a view, ending any drag still open on it
func (r *Views) Close(id string) bool {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if ok {
		v.drag.PointerUp()
	}
	return ok
}

// Len returns the number of open views
func (r *Views) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// Each calls fn for every open view
func (r *Views) Each(fn func(*View)) {
	r.mu.RLock()
	views := make([]*View, 0, len(r.views))
	for _, v := range r.views {
		views = append(views, v)
	}
	r.mu.RUnlock()

	for _, v := range views {
		fn(v)
	}
}
