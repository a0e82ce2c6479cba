package overlay

import "sync"

// Registry is the ordered set of active layers. Every change is published to
// subscribers as a full snapshot; the layer count is small enough that
// consumers simply replace what they draw.
type Registry struct {
	mu     sync.RWMutex
	layers []*Layer
	next   int
	subs   map[int]func([]*Layer)
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[int]func([]*Layer))}
}

// Add appends l unless it is already present. It reports whether the
// registry changed.
func (r *Registry) Add(l *Layer) bool {
	r.mu.Lock()
	for _, x := range r.layers {
		if x == l {
			r.mu.Unlock()
			return false
		}
	}
	r.layers = append(r.layers, l)
	snap, subs := r.snapshotLocked()
	r.mu.Unlock()
	notify(subs, snap)
	return true
}

// Remove drops l if present. Removing an absent layer is not an error.
func (r *Registry) Remove(l *Layer) bool {
	r.mu.Lock()
	idx := -1
	for i, x := range r.layers {
		if x == l {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return false
	}
	r.layers = append(r.layers[:idx:idx], r.layers[idx+1:]...)
	snap, subs := r.snapshotLocked()
	r.mu.Unlock()
	notify(subs, snap)
	return true
}

func (r *Registry) Contains(l *Layer) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, x := range r.layers {
		if x == l {
			return true
		}
	}
	return false
}

// Layers returns a copy of the active layers in insertion order.
func (r *Registry) Layers() []*Layer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Layer(nil), r.layers...)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.layers)
}

// OnChange subscribes fn to registry changes.
func (r *Registry) OnChange(fn func([]*Layer)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.next
	r.next++
	r.subs[id] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

func (r *Registry) snapshotLocked() ([]*Layer, []func([]*Layer)) {
	snap := append([]*Layer(nil), r.layers...)
	subs := make([]func([]*Layer), 0, len(r.subs))
	for i := 0; i < r.next; i++ {
		if fn, ok := r.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	return snap, subs
}

func notify(subs []func([]*Layer), snap []*Layer) {
	for _, fn := range subs {
		fn(snap)
	}
}
