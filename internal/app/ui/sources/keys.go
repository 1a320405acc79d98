package sources

import (
	"github.com/charmbracelet/bubbles/key"

	"mocha/internal/app/ui/components"
)

// KeyMap defines the key bindings for the sources panel
type KeyMap struct {
	components.KeyMap
	Toggle key.Binding
	Solo   key.Binding
	Watch  key.Binding
	Reload key.Binding
	Close  key.Binding
}

// DefaultKeyMap returns the default key bindings for the sources panel
func DefaultKeyMap() KeyMap {
	base := components.DefaultKeyMap()

	base.ToggleView.SetHelp("tab", "logs view")

	return KeyMap{
		KeyMap: base,
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Solo: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "solo / open"),
		),
		Watch: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "watch"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close / remove"),
		),
	}
}

// ShortHelp returns keybindings for the sources panel mini help
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Solo, k.Toggle, k.Watch, k.ToggleView, k.Quit}
}

// FullHelp returns keybindings for the sources panel expanded help
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Solo, k.Toggle},
		{k.Watch, k.Reload, k.Close, k.ToggleView, k.Quit},
	}
}
