package geom

import "github.com/paulmach/orb/geojson"

// NorwegianTag is the language tag of the name variant used for labels.
const NorwegianTag = "nor"

// PlaceName is one language-tagged name variant, as found in the
// Kartverket "navn" arrays: [{"sprak": "nor", "navn": "Værøy"}].
type PlaceName struct {
	Language string
	Name     string
}

// PlaceNames decodes a "navn" value. A plain string becomes a single
// untagged entry; anything unrecognised yields nil.
func PlaceNames(v any) []PlaceName {
	switch t := v.(type) {
	case string:
		return []PlaceName{{Name: t}}
	case []any:
		out := make([]PlaceName, 0, len(t))
		for _, el := range t {
			m, ok := el.(map[string]any)
			if !ok {
				continue
			}
			lang, _ := m["sprak"].(string)
			name, _ := m["navn"].(string)
			out = append(out, PlaceName{Language: lang, Name: name})
		}
		return out
	case []PlaceName:
		return t
	}
	return nil
}

// NorwegianName returns the entry tagged "nor".
func NorwegianName(names []PlaceName) (string, bool) {
	for _, n := range names {
		if n.Language == NorwegianTag {
			return n.Name, true
		}
	}
	return "", false
}

// LabelOf resolves the display name of a property set. A string "navn" is
// used as is; a tagged list only yields its Norwegian entry.
func LabelOf(props geojson.Properties) string {
	v, ok := props["navn"]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	name, _ := NorwegianName(PlaceNames(v))
	return name
}
