package tui

import (
	"fmt"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"overlaymap/internal/geom"
	"overlaymap/internal/overlay"
)

const sidebarWidth = 34

type featureItem struct {
	title, desc string
	f           *geom.Feature
}

func (i featureItem) Title() string       { return i.title }
func (i featureItem) Description() string { return i.desc }
func (i featureItem) FilterValue() string { return i.title }

// sortByName orders features by name the way a Norwegian reader expects
// (Æ, Ø and Å after Z).
func sortByName(fs []*geom.Feature, name func(*geom.Feature) string) {
	col := collate.New(language.Make("nb"), collate.IgnoreCase)
	sort.SliceStable(fs, func(i, j int) bool {
		return col.CompareString(name(fs[i]), name(fs[j])) < 0
	})
}

// panelItems lists the layer's features for the side panel, sorted by name.
func panelItems(l *overlay.Layer) []list.Item {
	fs := append([]*geom.Feature(nil), l.Features()...)
	name := l.Name
	if name == nil {
		name = (*geom.Feature).Label
	}
	sortByName(fs, name)
	items := make([]list.Item, 0, len(fs))
	for _, f := range fs {
		title := name(f)
		if title == "" {
			title = "(uten navn)"
		}
		var desc string
		if l.Row != nil {
			desc = strings.Join(l.Row(f), " · ")
		}
		items = append(items, featureItem{title: title, desc: desc, f: f})
	}
	return items
}

// refreshPanel reloads the list for the focused layer.
func (m *Model) refreshPanel() {
	c := m.focused()
	if c == nil {
		return
	}
	items := panelItems(c.Layer)
	m.panelCount = len(items)
	m.l.Title = c.Layer.Title
	m.l.SetItems(items)
	if !m.panelVisible() {
		switch {
		case !c.Checked():
			m.status = c.Layer.Title + ": layer is off"
		default:
			m.status = fmt.Sprintf("%s: no list for %d features", c.Layer.Title, m.panelCount)
		}
	}
}

// panelVisible reports whether the side panel has something to show.
func (m Model) panelVisible() bool {
	if !m.showSidebar {
		return false
	}
	c := m.focused()
	if c == nil || !c.Checked() {
		return false
	}
	pv := c.Layer.PanelVisible
	return pv == nil || pv(m.panelCount)
}

// highlightRow makes the list cursor's feature the layer's selection and
// shows its popover at the feature's anchor.
func (m *Model) highlightRow() {
	c := m.focused()
	it, ok := m.l.SelectedItem().(featureItem)
	if c == nil || !ok || !c.Checked() {
		return
	}
	c.Layer.Selection.Set(it.f)
	var lines []string
	if c.Layer.Popover != nil {
		lines = c.Layer.Popover(it.f)
	}
	c.SetPopover(overlay.Popover{
		Anchor:  geom.PointToWGS84(it.f.Anchor()),
		Lines:   lines,
		Visible: true,
		Seq:     m.app.Dispatcher.Stamp(),
	})
}

// cyclePanel focuses the next (or previous) layer in the panel.
func (m *Model) cyclePanel(step int) {
	n := len(m.app.Controls)
	if n == 0 {
		return
	}
	m.panel = ((m.panel+step)%n + n) % n
	m.l.ResetSelected()
	m.l.ResetFilter()
	m.refreshPanel()
}
