package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"overlaymap/internal/geom"
	"overlaymap/internal/overlay"
)

// activePopover is the visible popover produced by the most recent event
// across all enabled layers.
func (m Model) activePopover() (overlay.Popover, bool) {
	var best overlay.Popover
	found := false
	for _, c := range m.app.Controls {
		if !c.Checked() {
			continue
		}
		p := c.Popover()
		if p.Visible && (!found || p.Seq > best.Seq) {
			best, found = p, true
		}
	}
	return best, found
}

// withPopover splices the active popover into the rendered map, up and to
// the right of its anchor, kept inside the canvas.
func (m Model) withPopover(mapView string, w, h int) string {
	p, ok := m.activePopover()
	if !ok || len(p.Lines) == 0 {
		return mapView
	}
	box := popoverStyle.MaxWidth(max(12, w/2)).Render(strings.Join(p.Lines, "\n"))
	boxW, boxH := maxLineWidth(box), strings.Count(box, "\n")+1
	x, y := m.vp.toMicro(geom.PointToPlanar(p.Anchor), w, h)
	cx, cy := int(math.Floor(x/2))+2, int(math.Floor(y/4))-boxH
	if cy < 0 {
		cy = int(math.Floor(y/4)) + 1
	}
	cx = max(0, min(cx, w-boxW))
	cy = max(0, min(cy, h-boxH))
	return placeOverlay(cx, cy, box, mapView)
}

// placeOverlay writes fg over bg with its top-left corner at cell (x, y).
// Both may carry ANSI styling.
func placeOverlay(x, y int, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")
	for i, fl := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bl := bgLines[row]
		left := ansi.Truncate(bl, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		right := ansi.TruncateLeft(bl, x+ansi.StringWidth(fl), "")
		bgLines[row] = left + fl + right
	}
	return strings.Join(bgLines, "\n")
}

func maxLineWidth(s string) int {
	w := 0
	for _, l := range strings.Split(s, "\n") {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}
