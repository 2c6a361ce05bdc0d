package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the picker key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Confirm     key.Binding
	Quit        key.Binding
	Copy        key.Binding
	PreviewUp   key.Binding
	PreviewDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy command"),
		),
		PreviewUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "preview up"),
		),
		PreviewDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "preview down"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Confirm},
		{k.Copy, k.PreviewUp, k.PreviewDown, k.Quit},
	}
}
