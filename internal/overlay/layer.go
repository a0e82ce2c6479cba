package overlay

import (
	"overlaymap/internal/geom"
)

// Interaction is how a layer's features become active on the map.
type Interaction int

const (
	InteractClick Interaction = iota
	InteractHover
)

func (i Interaction) String() string {
	if i == InteractHover {
		return "hover"
	}
	return "click"
}

// DefaultHitTolerance is the pick tolerance in pixels.
const DefaultHitTolerance = 4

// Layer is a named, styleable dataset. There is one Layer per dataset per
// application; identity is the pointer.
type Layer struct {
	ID          string
	Title       string
	Kind        Kind
	Store       *Store
	Style       StyleFunc
	Popover     TextFunc
	Row         TextFunc
	Name        func(*geom.Feature) string // side panel sort key
	Interaction Interaction
	Selection   *Selection
	Lazy        bool

	// PanelVisible decides whether the side panel is shown for n visible features.
	PanelVisible func(n int) bool
}

// Features are the store's features; empty until loaded.
func (l *Layer) Features() []*geom.Feature { return l.Store.Features() }

// StyleOf evaluates the style with the layer's current selection.
func (l *Layer) StyleOf(f *geom.Feature, resolution float64) Style {
	return l.Style(f, resolution, l.Selection.IsActive(f))
}

// HitTest returns the features under the event, allowing tolerancePx pixels
// of slack for points and lines.
func (l *Layer) HitTest(ev PointerEvent, tolerancePx float64) []*geom.Feature {
	tol := tolerancePx * ev.Resolution
	var hits []*geom.Feature
	for _, f := range l.Features() {
		slack := tol + l.pointRadius(f, ev.Resolution)*ev.Resolution
		if f.Hit(ev.Planar, slack) {
			hits = append(hits, f)
		}
	}
	return hits
}

// pointRadius is the drawn symbol radius of point features, so that picking
// matches what is on screen.
func (l *Layer) pointRadius(f *geom.Feature, resolution float64) float64 {
	if !f.IsPoint() || l.Style == nil {
		return 0
	}
	return l.Style(f, resolution, false).Radius
}
