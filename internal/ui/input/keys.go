package input

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the key bindings. It also feeds the help footer.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Release      key.Binding
	SnapTo       key.Binding
	Programmatic key.Binding
	Feed         key.Binding
	Interact     key.Binding
	Mode         key.Binding
	Trace        key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "u"),
			key.WithHelp("pgup/u", "fling up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "d", " "),
			key.WithHelp("pgdn/d", "fling down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Release: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "release touch"),
		),
		SnapTo: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-0", "go to section"),
		),
		Programmatic: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "faq scrolls itself"),
		),
		Feed: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle badge"),
		),
		Interact: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "interact"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mode"),
		),
		Trace: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trace"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Release, k.SnapTo, k.Feed, k.Trace, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Release, k.SnapTo, k.Programmatic},
		{k.Feed, k.Interact, k.Mode},
		{k.Trace, k.Help, k.Quit},
	}
}
