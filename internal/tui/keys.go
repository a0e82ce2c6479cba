package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle  key.Binding
	Center  key.Binding
	Goto    key.Binding
	Fit     key.Binding
	Pan     key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Sidebar key.Binding
	Prev    key.Binding
	Next    key.Binding
	Attrs   key.Binding
	Clear   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "layers")),
		Center:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "center on me")),
		Goto:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "goto")),
		Fit:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit")),
		Pan:     key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("↑↓←→", "pan")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_")),
		Sidebar: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "list")),
		Prev:    key.NewBinding(key.WithKeys("[")),
		Next:    key.NewBinding(key.WithKeys("]"), key.WithHelp("[ ]", "list layer")),
		Attrs:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attrs")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Help:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Center, k.Goto, k.Pan, k.ZoomIn, k.Sidebar, k.Next, k.Attrs, k.Fit, k.Help, k.Quit}
}
