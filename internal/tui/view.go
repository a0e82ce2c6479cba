package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"overlaymap/internal/overlay"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()
	contentWidth := max(10, m.width)

	// Header: title and the layer checkboxes
	header := titleStyle.Render(" overlaymap ─ beredskapskart ")
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)
	nav := lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(m.renderNav())

	// Sidebar
	var sidebar string
	if lo.sidebarW > 0 {
		m.l.SetSize(lo.sidebarW-2, lo.mapH-2)
		sidebar = boxStyle.Width(lo.sidebarW - 2).Height(lo.mapH - 2).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		// Render attributes table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, lo.mapW-6)
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.gotoMode:
		m.ti.Width = min(lo.mapW-8, 40)
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, boxStyle.Render(m.ti.View()))
	default:
		ascii := m.withPopover(m.renderMap(lo.mapW, lo.mapH), lo.mapW, lo.mapH)
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(ascii)
	}

	body := mapView
	if sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: status line, then help and mouse coords
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  z=%.1f ", m.hoverLon, m.hoverLat, m.vp.zoom))
	}
	spacerW := max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(coords))
	statusLine := status + strings.Repeat(" ", spacerW) + coords
	footer := lipgloss.JoinVertical(lipgloss.Left, statusLine, m.renderHelp())

	ui := lipgloss.JoinVertical(lipgloss.Left, header, nav, body, footer)
	return appStyle.Width(contentWidth).MaxHeight(m.height).Render(ui)
}

// renderNav draws one checkbox per layer, numbered by its toggle key.
func (m Model) renderNav() string {
	parts := make([]string, 0, len(m.app.Controls)+1)
	for i, c := range m.app.Controls {
		box := "[ ]"
		if c.Checked() {
			box = checkedStyle.Render("[x]")
		}
		item := fmt.Sprintf("%s %d %s", box, i+1, c.Layer.Title)
		switch c.Layer.Store.State() {
		case overlay.StateLoading:
			item += dimStyle.Render(" …")
		case overlay.StateFailed:
			item += dimStyle.Render(" !")
		}
		if m.showSidebar && i == m.panel%len(m.app.Controls) {
			item = lipgloss.NewStyle().Underline(true).Render(item)
		}
		parts = append(parts, item)
	}
	parts = append(parts, dimStyle.Render("c Center"))
	return " " + strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	return " " + m.help.ShortHelpView(m.keys.ShortHelp())
}
