package tui

import (
	"context"
	"fmt"
	"strings"

	key "github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"

	"overlaymap/internal/config"
	"overlaymap/internal/geom"
	"overlaymap/internal/metrics"
	"overlaymap/internal/overlay"
)

const (
	headerHeight = 2 // title + layer checkboxes
	footerHeight = 2
	zoomStep     = 0.5
	panStep      = 8 // dots
)

type loadedMsg struct {
	layer *overlay.Layer
	err   error
}

type locatedMsg struct {
	p   orb.Point
	err error
}

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	sidebarW   int
	mapX, mapY int
	mapW, mapH int
}

func (m Model) layout() layout {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	lo := layout{mapY: headerHeight, mapH: contentHeight}
	if m.panelVisible() {
		lo.sidebarW = sidebarWidth
		lo.mapX = sidebarWidth + 1
	}
	lo.mapW = max(8, contentWidth-lo.mapX)
	return lo
}

func (m Model) loadCmd(l *overlay.Layer) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		ctx, cancel := a.LoadContext()
		defer cancel()
		return loadedMsg{layer: l, err: l.Store.Load(ctx)}
	}
}

func (m Model) locateCmd() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		ctx := context.Background()
		if t := a.Config.Locate.Timeout; t > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, t)
			defer cancel()
		}
		p, err := a.Locator.Locate(ctx)
		return locatedMsg{p: p, err: err}
	}
}

// flyTo starts an animation to a WGS84 point at zoom.
func (m *Model) flyTo(p orb.Point, zoom float64) tea.Cmd {
	to := viewport{center: geom.PointToPlanar(p), zoom: zoom}
	m.flight = &flight{from: m.vp, to: to}
	return flightTick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.l.SetSize(sidebarWidth-2, max(4, m.height-headerHeight-footerHeight)-2)
	case loadedMsg:
		return m.loaded(msg), nil
	case locatedMsg:
		m.locating = false
		if msg.err != nil {
			log.WithError(msg.err).Warn("locate failed")
			metrics.LocateTotal.WithLabelValues("error").Inc()
			m.status = "location unavailable"
			return m, nil
		}
		metrics.LocateTotal.WithLabelValues("ok").Inc()
		m.status = fmt.Sprintf("centered on lon=%.5f lat=%.5f", msg.p[0], msg.p[1])
		return m, m.flyTo(msg.p, m.app.Config.Locate.Zoom)
	case flightMsg:
		if m.flight == nil {
			return m, nil
		}
		vp, done := m.flight.advance()
		m.vp = vp
		if done {
			m.flight = nil
			return m, nil
		}
		return m, flightTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

func (m Model) loaded(msg loadedMsg) Model {
	l := msg.layer
	if msg.err != nil {
		m.status = fmt.Sprintf("load error: %s: %v", l.Title, msg.err)
		return m
	}
	m.status = fmt.Sprintf("loaded: %s  features=%d", l.Title, len(l.Features()))
	l.Selection.Retain(l.Features())
	if c := m.focused(); c != nil && c.Layer == l {
		m.refreshPanel()
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c quits from every mode; plain q stays typeable in the prompts
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.panelVisible() && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.gotoMode {
		switch msg.String() {
		case "esc":
			m.gotoMode = false
			m.ti.Blur()
			return m, nil
		case "enter":
			ll, err := config.ParseLatLon(strings.TrimSpace(m.ti.Value()))
			if err != nil {
				m.status = "goto: " + err.Error()
				return m, nil
			}
			m.gotoMode = false
			m.ti.Blur()
			m.status = fmt.Sprintf("goto lon=%.5f lat=%.5f", ll[0], ll[1])
			return m, m.flyTo(orb.Point{ll[0], ll[1]}, m.app.Config.Locate.Zoom)
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	if m.showAttrs {
		switch {
		case key.Matches(msg, m.keys.Attrs), key.Matches(msg, m.keys.Clear):
			m.showAttrs = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
		default:
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Toggle):
		return m.toggle(int(msg.Runes[0] - '1'))
	case key.Matches(msg, m.keys.Center):
		if m.locating {
			return m, nil
		}
		m.locating = true
		m.status = "locating…"
		return m, m.locateCmd()
	case key.Matches(msg, m.keys.Goto):
		m.gotoMode = true
		m.ti.SetValue("")
		m.status = "goto mode"
		return m, m.ti.Focus()
	case key.Matches(msg, m.keys.Fit):
		m.fitFocused()
	case key.Matches(msg, m.keys.ZoomIn):
		m.vp = m.vp.zoomBy(zoomStep)
		m.status = fmt.Sprintf("zoom: %.1f", m.vp.zoom)
	case key.Matches(msg, m.keys.ZoomOut):
		m.vp = m.vp.zoomBy(-zoomStep)
		m.status = fmt.Sprintf("zoom: %.1f", m.vp.zoom)
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshPanel()
		}
	case key.Matches(msg, m.keys.Prev):
		m.cyclePanel(-1)
	case key.Matches(msg, m.keys.Next):
		m.cyclePanel(1)
	case key.Matches(msg, m.keys.Attrs):
		m.showAttrs = true
		m.refreshAttrs()
	case key.Matches(msg, m.keys.Clear):
		m.clearSelections()
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
	case key.Matches(msg, m.keys.Pan):
		if m.panelVisible() && (msg.String() == "up" || msg.String() == "down") {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			m.highlightRow()
			return m, cmd
		}
		switch msg.String() {
		case "up":
			m.vp = m.vp.pan(0, -panStep)
		case "down":
			m.vp = m.vp.pan(0, panStep)
		case "left":
			m.vp = m.vp.pan(-panStep, 0)
		case "right":
			m.vp = m.vp.pan(panStep, 0)
		}
	default:
		if m.panelVisible() {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			m.highlightRow()
			return m, cmd
		}
	}
	return m, nil
}

// quit closes every control before leaving the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if err := m.app.Close(); err != nil {
		log.WithError(err).Warn("close")
	}
	return m, tea.Quit
}

// toggle flips the checkbox of the i-th layer and starts its lazy load.
func (m Model) toggle(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.app.Controls) {
		return m, nil
	}
	c := m.app.Controls[i]
	load := c.Toggle()
	state := "off"
	if c.Checked() {
		state = "on"
	}
	m.status = fmt.Sprintf("%s: %s", c.Layer.Title, state)
	if m.showSidebar {
		m.refreshPanel()
	}
	if load {
		m.status += "  loading…"
		return m, m.loadCmd(c.Layer)
	}
	return m, nil
}

// clearSelections is the keyboard equivalent of the pointer leaving the map.
func (m *Model) clearSelections() {
	for _, c := range m.app.Controls {
		c.Layer.Selection.Clear()
		if c.Popover().Visible {
			c.SetPopover(overlay.Popover{})
		}
	}
	m.status = "selection cleared"
}

func (m *Model) fitFocused() {
	c := m.focused()
	if c == nil {
		return
	}
	b, ok := geom.Extent(c.Layer.Features())
	if !ok {
		m.status = c.Layer.Title + ": nothing to fit"
		return
	}
	lo := m.layout()
	m.vp = m.vp.fit(b, lo.mapW, lo.mapH)
	m.status = fmt.Sprintf("fit: %s  zoom: %.1f", c.Layer.Title, m.vp.zoom)
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	lo := m.layout()
	cx, cy := msg.X-lo.mapX, msg.Y-lo.mapY
	inMap := cx >= 0 && cx < lo.mapW && cy >= 0 && cy < lo.mapH
	if !inMap || m.showAttrs || m.gotoMode {
		m.hoverHasGeo = false
		return m
	}
	m.hoverLon, m.hoverLat = m.cellToLonLat(cx, cy, lo.mapW, lo.mapH)
	m.hoverHasGeo = true

	var kind overlay.EventKind
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.vp = m.vp.zoomBy(zoomStep)
		return m
	case msg.Button == tea.MouseButtonWheelDown:
		m.vp = m.vp.zoomBy(-zoomStep)
		return m
	case msg.Action == tea.MouseActionMotion:
		kind = overlay.PointerMove
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		kind = overlay.PointerClick
	default:
		return m
	}
	m.app.Dispatcher.Dispatch(overlay.PointerEvent{
		Kind:       kind,
		Coordinate: orb.Point{m.hoverLon, m.hoverLat},
		Planar:     m.vp.cellToPlanar(cx, cy, lo.mapW, lo.mapH),
		Resolution: m.vp.resolution(),
	})
	return m
}
