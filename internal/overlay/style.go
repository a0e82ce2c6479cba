// Package overlay holds the layer-visibility and feature-selection state of
// the viewer: stores, layers, the registry of active layers, pointer event
// fan-out, per-layer selection and the checkbox controls tying them together.
package overlay

import "overlaymap/internal/geom"

// Color is a CSS hex colour; empty means "not drawn".
type Color string

// Style is the visual encoding of one feature.
type Style struct {
	Stroke      Color
	StrokeWidth float64
	Fill        Color
	Radius      float64 // point symbol radius in pixels
	Label       string
	LabelColor  Color
	Bold        bool
}

// StyleFunc derives a feature's style. Implementations must be pure: the
// renderer calls them for every feature on every frame, and highlight state
// arrives through active instead of being stored on the feature.
type StyleFunc func(f *geom.Feature, resolution float64, active bool) Style

// TextFunc renders feature metadata as lines (popover body, panel rows).
type TextFunc func(f *geom.Feature) []string
