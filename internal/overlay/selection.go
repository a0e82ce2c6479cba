package overlay

import (
	"sync"

	"overlaymap/internal/geom"
)

// Selection is the set of currently active (hovered or clicked) features of
// one layer.
type Selection struct {
	mu     sync.RWMutex
	active []*geom.Feature
}

func NewSelection() *Selection { return &Selection{} }

// Pick applies the map policy: exactly one hit becomes the selection, zero
// or several clear it. It reports whether the selection changed.
func (s *Selection) Pick(hits []*geom.Feature) bool {
	if len(hits) == 1 {
		return s.Set(hits[0])
	}
	return s.Clear()
}

// Set replaces the selection; used by side panels, which may highlight
// several features at once.
func (s *Selection) Set(fs ...*geom.Feature) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sameFeatures(s.active, fs) {
		return false
	}
	s.active = append([]*geom.Feature(nil), fs...)
	return true
}

func (s *Selection) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.active) == 0 {
		return false
	}
	s.active = nil
	return true
}

// Active returns a copy of the selection.
func (s *Selection) Active() []*geom.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*geom.Feature(nil), s.active...)
}

func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}

func (s *Selection) IsActive(f *geom.Feature) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.active {
		if a == f {
			return true
		}
	}
	return false
}

// Retain drops every active feature that is not in visible.
func (s *Selection) Retain(visible []*geom.Feature) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.active) == 0 {
		return false
	}
	keep := make(map[*geom.Feature]bool, len(visible))
	for _, f := range visible {
		keep[f] = true
	}
	kept := s.active[:0:0]
	for _, f := range s.active {
		if keep[f] {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(s.active) {
		return false
	}
	s.active = kept
	return true
}

func sameFeatures(a, b []*geom.Feature) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
