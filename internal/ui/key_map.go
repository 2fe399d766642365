package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	toggle  key.Binding
	extend  key.Binding
	all     key.Binding
	clear   key.Binding
	save    key.Binding
	discard key.Binding
	refresh key.Binding
	status  key.Binding
	yes     key.Binding
	no      key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		extend:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "range toggle")),
		all:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		discard: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "discard")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		status:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "view")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.save, k.discard, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.toggle, k.extend},
		{k.all, k.clear, k.save, k.discard},
		{k.refresh, k.status, k.quit},
	}
}
