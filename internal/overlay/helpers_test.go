package overlay

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"overlaymap/internal/geom"
)

func testLayer(t *testing.T, kind Kind, fs ...*geom.Feature) *Layer {
	t.Helper()
	l, err := NewLayer(Definition{ID: string(kind), Kind: kind}, nil)
	require.NoError(t, err)
	l.Store = NewStaticStore(l.ID, fs)
	return l
}

func square(id string, minLon, minLat, size float64, props geojson.Properties) *geom.Feature {
	ring := orb.Ring{
		{minLon, minLat}, {minLon + size, minLat}, {minLon + size, minLat + size},
		{minLon, minLat + size}, {minLon, minLat},
	}
	return geom.NewFeature(id, orb.Polygon{ring}, props)
}

func eventAt(kind EventKind, lon, lat, resolution float64) PointerEvent {
	p := orb.Point{lon, lat}
	return PointerEvent{Kind: kind, Coordinate: p, Planar: geom.PointToPlanar(p), Resolution: resolution}
}

func pointAt(lon, lat float64) orb.Point { return orb.Point{lon, lat} }
