package tui

import (
	help "github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"overlaymap/internal/app"
	"overlaymap/internal/geom"
	"overlaymap/internal/overlay"
)

type Model struct {
	app *app.App

	width  int
	height int

	showSidebar bool
	helpVisible bool

	vp     viewport
	flight *flight

	status   string
	locating bool

	// initial store loads, issued by Init
	pending []*overlay.Layer

	// side panel: features of one enabled layer
	panel      int // index into app.Controls
	l          list.Model
	panelCount int

	// goto prompt
	gotoMode bool
	ti       textinput.Model

	// hover state
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model

	keys keyMap
	help help.Model
}

// New builds the model and applies the initial checkbox states.
func New(a *app.App) Model {
	view := a.Config.View
	m := Model{
		app:         a,
		helpVisible: true,
		vp: viewport{
			center: geom.PointToPlanar(orb.Point{view.Center[0], view.Center[1]}),
			zoom:   view.Zoom,
		},
		status: "overlaymap ready",
		keys:   defaultKeys(),
		help:   help.New(),
	}
	m.pending = a.Start()

	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, 0, 0)
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.ti = textinput.New()
	m.ti.Placeholder = "lat,lon  e.g. 59.91,10.75"
	m.ti.Prompt = "goto › "
	m.ti.CharLimit = 64

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, l := range m.pending {
		cmds = append(cmds, m.loadCmd(l))
	}
	return tea.Batch(cmds...)
}

// focused is the control whose features the side panel and attribute table show.
func (m Model) focused() *overlay.Control {
	if len(m.app.Controls) == 0 {
		return nil
	}
	return m.app.Controls[m.panel%len(m.app.Controls)]
}
