package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	search   key.Binding
	back     key.Binding
	toggle   key.Binding
	stop     key.Binding
	backward key.Binding
	forward  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "results")),
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		stop:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		backward: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "rewind")),
		forward:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "forward")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.enter, k.toggle, k.stop, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.search, k.back},
		{k.toggle, k.stop, k.backward, k.forward},
		{k.quit},
	}
}
