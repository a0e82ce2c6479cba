package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadCSV reads a CSV with latitude/longitude columns and returns one point
// feature per row. Column detection: lat|latitude|y and lon|lng|long|longitude|x
// (case-insensitive). Every other column becomes a property; numeric cells are
// stored as float64 so they read the same as GeoJSON numbers.
func LoadCSV(r io.Reader) ([]*Feature, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	header := recs[0]
	idxLat, idxLon := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errors.New("csv: latitude/longitude columns not found")
	}
	var out []*Feature
	for n, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		props := geojson.Properties{}
		for i, h := range header {
			if i == idxLat || i == idxLon || i >= len(row) {
				continue
			}
			props[h] = cellValue(row[i])
		}
		out = append(out, NewFeature(strconv.Itoa(n), orb.Point{lon, lat}, props))
	}
	if len(out) == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}
	return out, nil
}

// cellValue stores numeric text as float64 so it reads the same as a
// GeoJSON number.
func cellValue(cell string) any {
	cell = strings.TrimSpace(cell)
	if v, err := strconv.ParseFloat(cell, 64); err == nil && !isCode(cell) {
		return v
	}
	return cell
}

// isCode keeps zero-padded identifiers such as kommunenummer "0301" as text.
func isCode(cell string) bool {
	return len(cell) > 1 && cell[0] == '0' && cell[1] != '.'
}
