package geom

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Feature is one decoded geographic record. It is never mutated after
// construction; identity is the pointer.
type Feature struct {
	ID         string
	Geometry   orb.Geometry // WGS84 lon/lat
	Properties geojson.Properties

	planar orb.Geometry // Web Mercator metres
	bound  orb.Bound
	anchor orb.Point
	label  string
}

// NewFeature builds a feature and memoizes everything the renderer and the
// style functions ask for repeatedly: projected geometry, bound, label anchor
// and display name.
func NewFeature(id string, g orb.Geometry, props geojson.Properties) *Feature {
	if props == nil {
		props = geojson.Properties{}
	}
	f := &Feature{ID: id, Geometry: g, Properties: props}
	f.planar = ToPlanar(g)
	f.bound = f.planar.Bound()
	f.anchor = labelAnchor(f.planar)
	f.label = LabelOf(props)
	return f
}

// Planar returns the geometry projected to Web Mercator.
func (f *Feature) Planar() orb.Geometry { return f.planar }

// Bound is the planar bound.
func (f *Feature) Bound() orb.Bound { return f.bound }

// Anchor is the planar point labels and popovers attach to.
func (f *Feature) Anchor() orb.Point { return f.anchor }

// Label is the resolved display name, empty when the feature has none.
func (f *Feature) Label() string { return f.label }

// String reads a property as text. Numbers are formatted without trailing zeros.
func (f *Feature) String(key string) string {
	v, ok := f.Properties[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		bs, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(bs)
	}
}

// Number reads a numeric property, accepting numeric strings. Missing or
// malformed values read as 0.
func (f *Feature) Number(key string) float64 {
	switch t := f.Properties[key].(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		n, _ := t.Float64()
		return n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// IsPoint reports whether the feature renders as a point symbol.
func (f *Feature) IsPoint() bool {
	switch f.Geometry.(type) {
	case orb.Point, orb.MultiPoint:
		return true
	}
	return false
}

func labelAnchor(g orb.Geometry) orb.Point {
	switch t := g.(type) {
	case orb.Point:
		return t
	case orb.Polygon, orb.MultiPolygon:
		c, area := planar.CentroidArea(t)
		if area > 0 {
			return c
		}
	}
	return g.Bound().Center()
}

// Extent returns the planar bound of all features, false when there are none.
func Extent(fs []*Feature) (orb.Bound, bool) {
	if len(fs) == 0 {
		return orb.Bound{}, false
	}
	b := fs[0].bound
	for _, f := range fs[1:] {
		b = b.Union(f.bound)
	}
	return b, true
}
