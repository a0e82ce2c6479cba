package overlay

import (
	"errors"
	"fmt"

	"overlaymap/internal/geom"
)

// Kind names a built-in dataset schema.
type Kind string

const (
	KindKommune  Kind = "kommune"
	KindDistrict Kind = "district"
	KindShelter  Kind = "shelter"
	KindSchool   Kind = "school"
)

var ErrUnknownKind = errors.New("unknown overlay kind")

// Definition configures one overlay.
type Definition struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Kind    Kind   `yaml:"kind"`
	Source  string `yaml:"source"`
	Format  Format `yaml:"format,omitempty"`
	Enabled bool   `yaml:"enabled"`
	Lazy    bool   `yaml:"lazy"`
}

// DefaultDefinitions are the four overlays of the emergency preparedness map.
func DefaultDefinitions() []Definition {
	return []Definition{
		{ID: "kommune", Title: "Kommuner", Kind: KindKommune, Source: "kommuner.json"},
		{ID: "district", Title: "Sivilforsvarsdistrikter", Kind: KindDistrict, Source: "district.json"},
		{ID: "shelter", Title: "Tilfluktsrom", Kind: KindShelter, Source: "shelter.geojson", Enabled: true},
		{ID: "school", Title: "Skoler", Kind: KindSchool, Source: "school.geojson", Lazy: true},
	}
}

// NewLayer builds the layer for def with a fresh store and selection.
func NewLayer(def Definition, fetcher Fetcher) (*Layer, error) {
	if def.ID == "" {
		def.ID = string(def.Kind)
	}
	if def.Title == "" {
		def.Title = def.ID
	}
	l := &Layer{
		ID:           def.ID,
		Title:        def.Title,
		Kind:         def.Kind,
		Store:        NewStore(def.ID, def.Source, def.Format, fetcher),
		Selection:    NewSelection(),
		Lazy:         def.Lazy,
		Name:         (*geom.Feature).Label,
		Row:          nameRow,
		PanelVisible: func(n int) bool { return n > 0 },
	}
	switch def.Kind {
	case KindKommune:
		l.Style, l.Popover, l.Interaction = kommuneStyle, kommunePopover, InteractClick
	case KindDistrict:
		l.Style, l.Popover, l.Interaction = districtStyle, districtPopover, InteractClick
	case KindShelter:
		l.Style, l.Popover, l.Interaction = shelterStyle, shelterPopover, InteractHover
		l.Row = shelterRow
		l.Name = func(f *geom.Feature) string { return f.String("adresse") }
	case KindSchool:
		l.Style, l.Popover, l.Interaction = schoolStyle, schoolPopover, InteractHover
		l.Row = schoolRow
		l.Name = func(f *geom.Feature) string { return f.String("navn") }
		l.PanelVisible = func(n int) bool { return n > 0 && n < 100 }
	default:
		return nil, fmt.Errorf("%s: %w %q", def.ID, ErrUnknownKind, def.Kind)
	}
	return l, nil
}
