package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Quit key.Binding
	Help key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func (m Model) ShortHelp() []key.Binding {
	b := m.board.Keys()
	if m.board.Dragging() {
		return []key.Binding{b.Left, b.Right, b.Grab, b.Cancel}
	}
	return []key.Binding{b.Add, b.Rename, b.Weight, b.Delete, b.Grab, b.Print, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	b := m.board.Keys()
	navigation := []key.Binding{b.Up, b.Down, b.Left, b.Right, b.Grab, b.Cancel}
	actions := []key.Binding{b.Add, b.Rename, b.Weight, b.Delete, b.Date, b.Box, b.Print}
	global := []key.Binding{m.keys.Quit, m.keys.Help}
	return [][]key.Binding{navigation, actions, global}
}
