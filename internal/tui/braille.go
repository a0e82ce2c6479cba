package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// wideTail marks the cell covered by the right half of a wide rune.
const wideTail rune = -1

// canvas is a braille buffer with one colour per cell; the last dot drawn
// into a cell decides its colour. Text written with putText replaces the
// braille glyph of its cells.
type canvas struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	fg   [][]lipgloss.TerminalColor
	bold [][]bool
	text [][]rune
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h}
	c.m = make([][]uint8, h)
	c.fg = make([][]lipgloss.TerminalColor, h)
	c.bold = make([][]bool, h)
	c.text = make([][]rune, h)
	for i := 0; i < h; i++ {
		c.m[i] = make([]uint8, w)
		c.fg[i] = make([]lipgloss.TerminalColor, w)
		c.bold[i] = make([]bool, w)
		c.text[i] = make([]rune, w)
	}
	return c
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (c *canvas) setPixel(mx, my int, col lipgloss.TerminalColor) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	c.m[cy][cx] |= bit
	c.fg[cy][cx] = col
}

// drawLineMicro draws a line on the microgrid using Bresenham. brush > 1
// stamps a brush x brush block per step for thick strokes.
func (c *canvas) drawLineMicro(x0, y0, x1, y1 int, col lipgloss.TerminalColor, brush int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		for bx := 0; bx < brush; bx++ {
			for by := 0; by < brush; by++ {
				c.setPixel(x0+bx, y0+by, col)
			}
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// disc fills every dot within r of (x, y).
func (c *canvas) disc(x, y, r float64, col lipgloss.TerminalColor) {
	for my := int(y - r); my <= int(y+r)+1; my++ {
		for mx := int(x - r); mx <= int(x+r)+1; mx++ {
			dx, dy := float64(mx)+0.5-x, float64(my)+0.5-y
			if dx*dx+dy*dy <= r*r {
				c.setPixel(mx, my, col)
			}
		}
	}
}

// ring draws the dots between r-1 and r of (x, y).
func (c *canvas) ring(x, y, r float64, col lipgloss.TerminalColor) {
	inner := (r - 1) * (r - 1)
	for my := int(y - r); my <= int(y+r)+1; my++ {
		for mx := int(x - r); mx <= int(x+r)+1; mx++ {
			dx, dy := float64(mx)+0.5-x, float64(my)+0.5-y
			d := dx*dx + dy*dy
			if d <= r*r && d >= inner {
				c.setPixel(mx, my, col)
			}
		}
	}
}

// putText writes s centred on cell (cx, cy), clipped to the canvas. Wide
// runes take two cells; the second is marked with wideTail.
func (c *canvas) putText(cx, cy int, s string, col lipgloss.TerminalColor, bold bool) {
	if cy < 0 || cy >= c.h {
		return
	}
	x := cx - ansi.StringWidth(s)/2
	for _, r := range s {
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		if x >= 0 && x+w <= c.w {
			for i := 0; i < w; i++ {
				c.text[cy][x+i] = wideTail
				c.fg[cy][x+i] = col
				c.bold[cy][x+i] = bold
			}
			c.text[cy][x] = r
		}
		x += w
	}
}

func (c *canvas) toLines() []string {
	out := make([]string, c.h)
	var sb, run strings.Builder
	for y := 0; y < c.h; y++ {
		sb.Reset()
		run.Reset()
		var runCol lipgloss.TerminalColor
		runBold := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runCol == nil {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(runCol).Bold(runBold).Render(run.String()))
			}
			run.Reset()
		}
		skip := 0
		for x := 0; x < c.w; x++ {
			if skip > 0 {
				skip--
				continue
			}
			r := ' '
			var col lipgloss.TerminalColor
			bold := false
			switch {
			case c.text[y][x] > 0:
				r, col, bold = c.text[y][x], c.fg[y][x], c.bold[y][x]
				skip = ansi.StringWidth(string(r)) - 1
			case c.m[y][x] != 0:
				r, col = rune(0x2800+int(c.m[y][x])), c.fg[y][x]
			}
			if col != runCol || bold != runBold {
				flush()
				runCol, runBold = col, bold
			}
			run.WriteRune(r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
