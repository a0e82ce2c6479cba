package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var ErrNoPlacemarks = errors.New("kml: no point placemarks found")

type kmlData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type kmlPlacemark struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"name"`
	Point *struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
	Data []kmlData `xml:"ExtendedData>Data"`
}

// LoadKML reads point placemarks (Placemark > Point > coordinates) at any
// depth of Document/Folder nesting. KML coordinates are "lon,lat[,alt]";
// altitude is ignored. The placemark name becomes "navn" and ExtendedData
// entries become properties, parsed like CSV cells.
func LoadKML(r io.Reader) ([]*Feature, error) {
	dec := xml.NewDecoder(r)
	var out []*Feature
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("kml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, fmt.Errorf("kml: %w", err)
		}
		if pm.Point == nil {
			continue
		}
		p, ok := parseKMLCoord(pm.Point.Coordinates)
		if !ok {
			continue
		}
		props := geojson.Properties{}
		if pm.Name != "" {
			props["navn"] = pm.Name
		}
		for _, d := range pm.Data {
			props[d.Name] = cellValue(d.Value)
		}
		id := pm.ID
		if id == "" {
			id = strconv.Itoa(len(out))
		}
		out = append(out, NewFeature(id, p, props))
	}
	if len(out) == 0 {
		return nil, ErrNoPlacemarks
	}
	return out, nil
}

// parseKMLCoord reads the first "lon,lat[,alt]" tuple.
func parseKMLCoord(s string) (orb.Point, bool) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return orb.Point{}, false
	}
	vals := strings.Split(parts[0], ",")
	if len(vals) < 2 {
		return orb.Point{}, false
	}
	lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
	lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
	if err1 != nil || err2 != nil {
		return orb.Point{}, false
	}
	return orb.Point{lon, lat}, true
}
