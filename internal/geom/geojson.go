package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

// ErrNoGeometry is returned when a document decodes but holds nothing drawable.
var ErrNoGeometry = errors.New("no geometries found")

// LoadGeoJSON decodes a FeatureCollection, a single Feature or a bare
// geometry. Features without geometry are skipped. An empty collection is
// an empty layer; a document whose features all lack geometry is an error.
func LoadGeoJSON(r io.Reader) ([]*Feature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var out []*Feature
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		if len(fc.Features) == 0 {
			return []*Feature{}, nil
		}
		out = make([]*Feature, 0, len(fc.Features))
		for i, f := range fc.Features {
			if f.Geometry == nil {
				continue
			}
			out = append(out, NewFeature(featureID(f.ID, i), f.Geometry, f.Properties))
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		if f.Geometry != nil {
			out = append(out, NewFeature(featureID(f.ID, 0), f.Geometry, f.Properties))
		}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("geojson %s: %w", head.Type, err)
		}
		out = append(out, NewFeature("0", g.Geometry(), nil))
	}
	if len(out) == 0 {
		return nil, ErrNoGeometry
	}
	return out, nil
}

func featureID(id any, index int) string {
	switch t := id.(type) {
	case nil:
		return strconv.Itoa(index)
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
