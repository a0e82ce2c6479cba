package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"overlaymap/internal/geom"
	"overlaymap/internal/overlay"
)

// clipPad is how far outside the canvas, in dots, segments are still drawn.
const clipPad = 4

type label struct {
	cx, cy int
	text   string
	col    lipgloss.TerminalColor
	bold   bool
}

// renderMap draws every registered layer in registry order, then the labels
// of all layers on top.
func (m Model) renderMap(w, h int) string {
	c := newCanvas(w, h)
	res := m.vp.resolution()
	view := m.vp.bound(w, h, 16)
	var labels []label
	for _, l := range m.app.Registry.Layers() {
		for _, f := range l.Features() {
			if !f.Bound().Intersects(view) {
				continue
			}
			st := l.StyleOf(f, res)
			m.drawGeometry(c, f.Planar(), st, w, h)
			if st.Label == "" {
				continue
			}
			x, y := m.vp.toMicro(f.Anchor(), w, h)
			cx, cy := int(math.Floor(x/2)), int(math.Floor(y/4))
			if f.IsPoint() {
				cy -= int(math.Ceil(st.Radius/4)) + 1
			}
			labels = append(labels, label{cx: cx, cy: cy, text: st.Label, col: termColor(st.LabelColor), bold: st.Bold})
		}
	}
	for _, lb := range labels {
		c.putText(lb.cx, lb.cy, lb.text, lb.col, lb.bold)
	}
	return strings.Join(c.toLines(), "\n")
}

func (m Model) drawGeometry(c *canvas, g orb.Geometry, st overlay.Style, w, h int) {
	switch g := g.(type) {
	case orb.Point:
		m.drawPoint(c, g, st, w, h)
	case orb.MultiPoint:
		for _, p := range g {
			m.drawPoint(c, p, st, w, h)
		}
	case orb.LineString:
		m.drawPath(c, g, false, st, w, h)
	case orb.MultiLineString:
		for _, ls := range g {
			m.drawPath(c, ls, false, st, w, h)
		}
	case orb.Ring:
		m.drawPolygon(c, orb.Polygon{g}, st, w, h)
	case orb.Polygon:
		m.drawPolygon(c, g, st, w, h)
	case orb.MultiPolygon:
		for _, p := range g {
			m.drawPolygon(c, p, st, w, h)
		}
	case orb.Collection:
		for _, sub := range g {
			m.drawGeometry(c, sub, st, w, h)
		}
	}
}

func (m Model) drawPoint(c *canvas, p orb.Point, st overlay.Style, w, h int) {
	x, y := m.vp.toMicro(p, w, h)
	r := math.Max(1, st.Radius)
	fill := st.Fill
	if fill == "" {
		fill = st.Stroke
	}
	c.disc(x, y, r, termColor(fill))
	if st.Stroke != "" && st.StrokeWidth >= 2 {
		c.ring(x, y, r+1, termColor(st.Stroke))
	}
}

func (m Model) drawPath(c *canvas, ls []orb.Point, closed bool, st overlay.Style, w, h int) {
	if st.Stroke == "" || len(ls) < 2 {
		return
	}
	col := termColor(st.Stroke)
	brush := max(1, min(3, int(math.Round(st.StrokeWidth))))
	if brush > 1 {
		brush--
	}
	minX, minY := -float64(clipPad), -float64(clipPad)
	maxX, maxY := float64(w*2+clipPad), float64(h*4+clipPad)
	n := len(ls)
	if !closed {
		n--
	}
	for i := 0; i < n; i++ {
		ax, ay := m.vp.toMicro(ls[i], w, h)
		bx, by := m.vp.toMicro(ls[(i+1)%len(ls)], w, h)
		x0, y0, x1, y1, ok := clipSegment(ax, ay, bx, by, minX, minY, maxX, maxY)
		if !ok {
			continue
		}
		c.drawLineMicro(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)), col, brush)
	}
}

// drawPolygon fills with the even-odd rule over all rings, so holes stay
// open, then strokes every ring.
func (m Model) drawPolygon(c *canvas, poly orb.Polygon, st overlay.Style, w, h int) {
	if st.Fill != "" {
		rings := make([][][2]float64, 0, len(poly))
		for _, r := range poly {
			pts := make([][2]float64, len(r))
			for i, p := range r {
				x, y := m.vp.toMicro(p, w, h)
				pts[i] = [2]float64{x, y}
			}
			rings = append(rings, pts)
		}
		col := termColor(st.Fill)
		wMic, hMic := w*2, h*4
		for yMic := 0; yMic < hMic; yMic++ {
			sy := float64(yMic) + 0.5
			var xs []float64
			for _, r := range rings {
				for i := 0; i < len(r); i++ {
					a, b := r[i], r[(i+1)%len(r)]
					if (sy >= a[1] && sy < b[1]) || (sy >= b[1] && sy < a[1]) {
						t := (sy - a[1]) / (b[1] - a[1])
						xs = append(xs, a[0]+t*(b[0]-a[0]))
					}
				}
			}
			if len(xs) < 2 {
				continue
			}
			sort.Float64s(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				xstart := max(0, int(math.Ceil(xs[i]-0.5)))
				xend := min(wMic-1, int(math.Floor(xs[i+1]-0.5)))
				for xMic := xstart; xMic <= xend; xMic++ {
					c.setPixel(xMic, yMic, col)
				}
			}
		}
	}
	for _, r := range poly {
		m.drawPath(c, r, true, st, w, h)
	}
}

// cellToLonLat converts a map cell coordinate to lon/lat.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64) {
	p := geom.PointToWGS84(m.vp.cellToPlanar(cx, cy, w, h))
	return p[0], p[1]
}
