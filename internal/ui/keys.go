package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the root-level keybindings for the application
type KeyMap struct {
	// Screens
	FormScreen     key.Binding
	ListScreen     key.Binding
	CalendarScreen key.Binding

	// General
	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		FormScreen: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "entry"),
		),
		ListScreen: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "list"),
		),
		CalendarScreen: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "calendar"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FormScreen, k.ListScreen, k.CalendarScreen},
		{k.ThemeCycle, k.Help, k.Quit},
	}
}
