package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"overlaymap/internal/app"
	"overlaymap/internal/config"
	"overlaymap/internal/geom"
	"overlaymap/internal/overlay"
)

var fixedFix = [2]float64{5.32, 60.39}

func kommune(id, name string, minLon, minLat, size float64) *geom.Feature {
	ring := orb.Ring{
		{minLon, minLat}, {minLon + size, minLat}, {minLon + size, minLat + size},
		{minLon, minLat + size}, {minLon, minLat},
	}
	return geom.NewFeature(id, orb.Polygon{ring}, geojson.Properties{
		"kommunenummer": id,
		"navn":          []any{map[string]any{"sprak": "nor", "navn": name}},
	})
}

// testModel is a 100x30 model centred on Oslo with one shelter there and
// two kommuner.
func testModel(t *testing.T) (Model, *app.App) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	fix := fixedFix
	cfg.Locate.Fixed = &fix
	a, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	shelter, ok := a.Control("shelter")
	require.True(t, ok)
	shelter.Layer.Store = overlay.NewStaticStore("shelter", []*geom.Feature{
		geom.NewFeature("s1", orb.Point{10.75, 59.91}, geojson.Properties{
			"adresse": "Storgata 1", "plasser": 120.0, "romnr": "7",
		}),
	})
	k, ok := a.Control("kommune")
	require.True(t, ok)
	k.Layer.Store = overlay.NewStaticStore("kommune", []*geom.Feature{
		kommune("3218", "Ås", 10.6, 59.6, 0.2),
		kommune("3201", "Bærum", 10.3, 59.85, 0.2),
	})

	m := New(a)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), a
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

// mouse moves (or clicks) at a cell of the map area.
func mouse(m Model, cx, cy int, action tea.MouseAction) Model {
	lo := m.layout()
	msg := tea.MouseMsg{X: lo.mapX + cx, Y: lo.mapY + cy, Action: action}
	if action == tea.MouseActionPress {
		msg.Button = tea.MouseButtonLeft
	}
	next, _ := m.Update(msg)
	return next.(Model)
}
