package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"overlaymap/internal/geom"
)

const (
	minZoom = 1
	maxZoom = 19

	flightSteps = 12
	flightFrame = 30 * time.Millisecond
)

// viewport is the visible part of the Web Mercator plane. One braille dot
// is one pixel, so the usual zoom levels apply.
type viewport struct {
	center orb.Point // planar
	zoom   float64
}

func (v viewport) resolution() float64 { return geom.Resolution(v.zoom) }

// toMicro maps a planar point to dot coordinates on a w x h cell canvas.
func (v viewport) toMicro(p orb.Point, w, h int) (float64, float64) {
	res := v.resolution()
	x := (p[0]-v.center[0])/res + float64(w*2)/2
	y := float64(h*4)/2 - (p[1]-v.center[1])/res
	return x, y
}

// fromMicro is the inverse of toMicro.
func (v viewport) fromMicro(x, y float64, w, h int) orb.Point {
	res := v.resolution()
	return orb.Point{
		v.center[0] + (x-float64(w*2)/2)*res,
		v.center[1] + (float64(h*4)/2-y)*res,
	}
}

// cellToPlanar returns the planar point under the middle of a cell.
func (v viewport) cellToPlanar(cx, cy, w, h int) orb.Point {
	return v.fromMicro(float64(cx*2)+1, float64(cy*4)+2, w, h)
}

// bound is the planar extent shown on a w x h canvas, padded by pad dots.
func (v viewport) bound(w, h int, pad float64) orb.Bound {
	min := v.fromMicro(-pad, float64(h*4)+pad, w, h)
	max := v.fromMicro(float64(w*2)+pad, -pad, w, h)
	return orb.Bound{Min: min, Max: max}
}

func (v viewport) zoomBy(d float64) viewport {
	v.zoom = math.Max(minZoom, math.Min(maxZoom, v.zoom+d))
	return v
}

// pan moves the view by whole dots.
func (v viewport) pan(dx, dy float64) viewport {
	res := v.resolution()
	v.center = orb.Point{v.center[0] + dx*res, v.center[1] - dy*res}
	return v
}

// fit frames b on a w x h canvas with a small margin.
func (v viewport) fit(b orb.Bound, w, h int) viewport {
	v.center = b.Center()
	rx := (b.Max[0] - b.Min[0]) / float64(max(1, w*2))
	ry := (b.Max[1] - b.Min[1]) / float64(max(1, h*4))
	res := math.Max(rx, ry) * 1.1
	if res <= 0 {
		v.zoom = maxZoom - 3
		return v
	}
	v.zoom = math.Max(minZoom, math.Min(maxZoom, geom.ZoomFor(res)))
	return v
}

// flight animates the viewport towards a target.
type flight struct {
	from, to viewport
	step     int
}

type flightMsg struct{}

func flightTick() tea.Cmd {
	return tea.Tick(flightFrame, func(time.Time) tea.Msg { return flightMsg{} })
}

func (f *flight) advance() (viewport, bool) {
	f.step++
	if f.step >= flightSteps {
		return f.to, true
	}
	t := float64(f.step) / flightSteps
	t = t * t * (3 - 2*t)
	return viewport{
		center: orb.Point{
			f.from.center[0] + (f.to.center[0]-f.from.center[0])*t,
			f.from.center[1] + (f.to.center[1]-f.from.center[1])*t,
		},
		zoom: f.from.zoom + (f.to.zoom-f.from.zoom)*t,
	}, false
}
