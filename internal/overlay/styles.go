package overlay

import (
	"fmt"

	"overlaymap/internal/geom"
)

// Polygon labels are dropped above this resolution (m/px) to keep the
// national view readable.
const labelMaxResolution = 1200

func kommuneStyle(f *geom.Feature, resolution float64, active bool) Style {
	s := Style{Stroke: "#000000", StrokeWidth: 1, LabelColor: "#000000"}
	if resolution <= labelMaxResolution {
		s.Label = f.Label()
	}
	if active {
		s.StrokeWidth = 3
		s.Label = f.Label()
		s.Bold = true
	}
	return s
}

func districtStyle(f *geom.Feature, resolution float64, active bool) Style {
	s := Style{Stroke: "#0000ff", StrokeWidth: 1.5, LabelColor: "#000000"}
	if resolution <= labelMaxResolution {
		s.Label = f.Label()
	}
	if active {
		s.Stroke = "#000000"
		s.StrokeWidth = 3
		s.Label = f.Label()
		s.Bold = true
	}
	return s
}

func shelterStyle(f *geom.Feature, _ float64, active bool) Style {
	if active {
		return Style{
			Stroke:      "#ffeb3b",
			StrokeWidth: 3,
			Fill:        "#dc85ff",
			Radius:      7,
			Label:       fmt.Sprintf("%s Pax: %s", f.String("adresse"), f.String("plasser")),
			LabelColor:  "#000000",
		}
	}
	return Style{
		Stroke:      "#ffffff",
		StrokeWidth: 0.5,
		Fill:        "#2318f5",
		Radius:      3 + f.Number("plasser")/400,
	}
}

func schoolStyle(f *geom.Feature, _ float64, active bool) Style {
	s := Style{
		Stroke:      "#ffffff",
		StrokeWidth: 1,
		Fill:        "#800080",
		Radius:      2 + f.Number("antall_elever")/150,
	}
	if f.String("eierforhold") == "Offentlig" {
		s.Fill = "#0000ff"
	}
	if active {
		s.StrokeWidth = 3
		s.Label = f.String("navn")
		s.LabelColor = "#000000"
		s.Bold = true
	}
	return s
}

func kommunePopover(f *geom.Feature) []string {
	name := f.Label()
	if name == "" {
		name = "(uten navn)"
	}
	return []string{name, "Kommunenummer: " + f.String("kommunenummer")}
}

func districtPopover(f *geom.Feature) []string {
	lines := []string{f.Label()}
	if u := f.String("url"); u != "" {
		lines = append(lines, u)
	}
	return lines
}

func shelterPopover(f *geom.Feature) []string {
	return []string{
		"Adresse: " + f.String("adresse"),
		"Plasser: " + f.String("plasser"),
		"Romnr: " + f.String("romnr"),
	}
}

func schoolPopover(f *geom.Feature) []string {
	return []string{
		f.String("navn"),
		fmt.Sprintf("Elever: %s  Ansatte: %s", f.String("antall_elever"), f.String("antall_ansatte")),
		fmt.Sprintf("Trinn: %s-%s", f.String("laveste_trinn"), f.String("hoyeste_trinn")),
		f.String("eierforhold"),
	}
}

func nameRow(f *geom.Feature) []string { return []string{f.Label()} }

func shelterRow(f *geom.Feature) []string {
	return []string{fmt.Sprintf("%s (%s plasser)", f.String("adresse"), f.String("plasser"))}
}

func schoolRow(f *geom.Feature) []string {
	return []string{fmt.Sprintf("%s (%s elever)", f.String("navn"), f.String("antall_elever"))}
}
