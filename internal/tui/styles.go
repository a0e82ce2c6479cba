package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"overlaymap/internal/overlay"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle     = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	popoverStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentFg).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(baseDimFg)
	checkedStyle = lipgloss.NewStyle().Foreground(accentFg)
)

// termColor maps a style colour to the terminal. Pure black and white
// strokes would vanish on one of the two backgrounds, so they adapt.
func termColor(c overlay.Color) lipgloss.TerminalColor {
	switch strings.ToLower(string(c)) {
	case "":
		return lipgloss.NoColor{}
	case "#000000", "black":
		return lipgloss.AdaptiveColor{Light: "#000000", Dark: "#E6E6E6"}
	case "#ffffff", "white":
		return lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#FFFFFF"}
	}
	return lipgloss.Color(string(c))
}
