package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overlaymap/internal/geom"
)

func TestViewportRoundTrip(t *testing.T) {
	vp := viewport{center: geom.PointToPlanar(orb.Point{10.75, 59.91}), zoom: 9}
	p := geom.PointToPlanar(orb.Point{10.9, 59.8})
	x, y := vp.toMicro(p, 80, 20)
	back := vp.fromMicro(x, y, 80, 20)
	assert.InDelta(t, p[0], back[0], 1e-6)
	assert.InDelta(t, p[1], back[1], 1e-6)

	// north is up, east is right
	cx, cy := vp.toMicro(vp.center, 80, 20)
	assert.Equal(t, 80.0, cx)
	assert.Equal(t, 40.0, cy)
	assert.Greater(t, x, cx)
	assert.Greater(t, y, cy)

	assert.True(t, vp.bound(80, 20, 0).Contains(vp.center))
}

func TestViewportZoomClamps(t *testing.T) {
	vp := viewport{zoom: maxZoom}
	assert.Equal(t, float64(maxZoom), vp.zoomBy(1).zoom)
	vp.zoom = minZoom
	assert.Equal(t, float64(minZoom), vp.zoomBy(-1).zoom)
}

func TestClipSegment(t *testing.T) {
	x0, y0, x1, y1, ok := clipSegment(-10, 5, 30, 5, 0, 0, 20, 10)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 5, 20, 5}, []float64{x0, y0, x1, y1})

	_, _, _, _, ok = clipSegment(-10, -5, 30, -5, 0, 0, 20, 10)
	assert.False(t, ok)
}

func TestPlaceOverlay(t *testing.T) {
	bg := "abcdefghij\nklmnopqrst"
	assert.Equal(t, "abcdefghij\nklmXYpqrst", placeOverlay(3, 1, "XY", bg))
	// rows outside the background are dropped
	assert.Equal(t, "abcdefghij\nklmnopqrXY", placeOverlay(8, 1, "XY\nZZ", bg))

	styled := "\x1b[31mabcdef\x1b[0m"
	assert.Equal(t, "abZdef", ansi.Strip(placeOverlay(2, 0, "Z", styled)))

	// a short line is padded up to the overlay
	assert.Equal(t, "ab  Z", placeOverlay(4, 0, "Z", "ab"))
}

func TestCanvasDotsAndText(t *testing.T) {
	c := newCanvas(4, 2)
	c.setPixel(0, 0, nil)
	c.setPixel(1, 3, nil)
	c.drawLineMicro(0, 4, 7, 4, nil, 1)
	c.putText(3, 1, "ab", nil, false)
	lines := c.toLines()
	require.Len(t, lines, 2)
	assert.Equal(t, string([]rune{rune(0x2800 + 0x01 + 0x80), ' ', ' ', ' '}), lines[0])
	assert.Equal(t, "⠉⠉ab", lines[1])
}

func TestCanvasWideRuneLabels(t *testing.T) {
	c := newCanvas(6, 3)
	c.putText(3, 0, "漢字", nil, false)
	c.putText(5, 1, "漢字", nil, false)
	c.putText(1, 2, "漢", nil, false)
	c.putText(0, 2, "a", nil, false)
	lines := c.toLines()
	assert.Equal(t, " 漢字 ", lines[0])
	assert.Equal(t, "   漢 ", lines[1])
	assert.Equal(t, "a     ", lines[2])
	for _, l := range lines {
		assert.Equal(t, 6, ansi.StringWidth(l))
	}
}

func TestRenderMapDrawsLayersAndLabels(t *testing.T) {
	m, a := testModel(t)
	k, _ := a.Control("kommune")
	k.SetChecked(true)
	lo := m.layout()
	b, _ := geom.Extent(k.Layer.Features())
	m.vp = m.vp.fit(b, lo.mapW, lo.mapH)
	m.vp.zoom = 8

	out := ansi.Strip(m.renderMap(lo.mapW, lo.mapH))
	assert.Len(t, strings.Split(out, "\n"), lo.mapH)
	assert.Contains(t, out, "Bærum")
	assert.Contains(t, out, "Ås")
	assert.True(t, strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28ff }))
}

func TestSortByNameNorwegian(t *testing.T) {
	var fs []*geom.Feature
	for _, n := range []string{"Ås", "Ørland", "Bø", "Ærø", "Zeta"} {
		fs = append(fs, kommune(n, n, 10, 60, 0.1))
	}
	sortByName(fs, (*geom.Feature).Label)
	var got []string
	for _, f := range fs {
		got = append(got, f.Label())
	}
	assert.Equal(t, []string{"Bø", "Zeta", "Ærø", "Ørland", "Ås"}, got)
}
