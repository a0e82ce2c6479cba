package geom

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kommuner = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "0301",
     "geometry": {"type": "Polygon", "coordinates": [[[10,59],[11,59],[11,60],[10,60],[10,59]]]},
     "properties": {"kommunenummer": "0301", "navn": [{"sprak": "nor", "navn": "Oslo"}, {"sprak": "sme", "navn": "Oslo"}]}},
    {"type": "Feature",
     "geometry": {"type": "Point", "coordinates": [10.5, 59.5]},
     "properties": {"plasser": 120, "adresse": "Storgata 1"}}
  ]
}`

func TestLoadGeoJSONFeatureCollection(t *testing.T) {
	fs, err := LoadGeoJSON(strings.NewReader(kommuner))
	require.NoError(t, err)
	require.Len(t, fs, 2)

	assert.Equal(t, "0301", fs[0].ID)
	assert.Equal(t, "Oslo", fs[0].Label())
	assert.False(t, fs[0].IsPoint())

	assert.Equal(t, "1", fs[1].ID)
	assert.True(t, fs[1].IsPoint())
	assert.Equal(t, 120.0, fs[1].Number("plasser"))
	assert.Equal(t, "Storgata 1", fs[1].String("adresse"))
}

func TestLoadGeoJSONSingleFeatureAndGeometry(t *testing.T) {
	fs, err := LoadGeoJSON(strings.NewReader(`{"type":"Feature","geometry":{"type":"Point","coordinates":[5,60]},"properties":{"navn":"Bergen"}}`))
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, "Bergen", fs[0].Label())

	fs, err = LoadGeoJSON(strings.NewReader(`{"type":"LineString","coordinates":[[5,60],[6,61]]}`))
	require.NoError(t, err)
	require.Len(t, fs, 1)
	_, ok := fs[0].Geometry.(orb.LineString)
	assert.True(t, ok)
}

func TestLoadGeoJSONEmptyCollection(t *testing.T) {
	fs, err := LoadGeoJSON(strings.NewReader(`{"type":"FeatureCollection","features":[]}`))
	require.NoError(t, err)
	assert.Empty(t, fs)
}

func TestLoadGeoJSONErrors(t *testing.T) {
	_, err := LoadGeoJSON(strings.NewReader(`{"features": []}`))
	assert.Error(t, err)


	_, err = LoadGeoJSON(strings.NewReader(`not json`))
	assert.Error(t, err)
}
