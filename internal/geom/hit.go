package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Hit reports whether the planar point p lies inside the feature's area, or
// for points and lines, within tolerance metres of its geometry. Areas get
// no tolerance: a point near a shared border hits only the side it is on.
func (f *Feature) Hit(p orb.Point, tolerance float64) bool {
	switch g := f.planar.(type) {
	case orb.Polygon:
		return f.bound.Contains(p) && planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return f.bound.Contains(p) && planar.MultiPolygonContains(g, p)
	case orb.Ring:
		return f.bound.Contains(p) && planar.RingContains(g, p)
	}
	if !f.bound.Pad(tolerance).Contains(p) {
		return false
	}
	if g, ok := f.planar.(orb.Point); ok {
		return planar.Distance(g, p) <= tolerance
	}
	return planar.DistanceFrom(f.planar, p) <= tolerance
}
