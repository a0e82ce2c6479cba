package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// resolution of zoom level 0 in metres per pixel (256px tiles, Web Mercator).
const zoom0Resolution = 2 * math.Pi * 6378137 / 256

// ToPlanar projects a WGS84 geometry to Web Mercator without touching the input.
func ToPlanar(g orb.Geometry) orb.Geometry {
	if g == nil {
		return orb.Collection{}
	}
	return project.Geometry(orb.Clone(g), project.WGS84.ToMercator)
}

// PointToPlanar projects a single lon/lat point.
func PointToPlanar(p orb.Point) orb.Point {
	return project.Point(p, project.WGS84.ToMercator)
}

// PointToWGS84 unprojects a Web Mercator point.
func PointToWGS84(p orb.Point) orb.Point {
	return project.Point(p, project.Mercator.ToWGS84)
}

// Resolution returns metres per pixel at a (fractional) zoom level.
func Resolution(zoom float64) float64 {
	return zoom0Resolution / math.Pow(2, zoom)
}

// ZoomFor is the inverse of Resolution.
func ZoomFor(resolution float64) float64 {
	if resolution <= 0 {
		return 0
	}
	return math.Log2(zoom0Resolution / resolution)
}
