package logs

import (
	"github.com/charmbracelet/bubbles/key"

	"mocha/internal/app/ui/components"
)

// KeyMap defines the key bindings for the log stream view
type KeyMap struct {
	components.KeyMap
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Select      key.Binding
	RangeSelect key.Binding
	SelectAll   key.Binding
	Delete      key.Binding
	Restore     key.Binding
	ClearSel    key.Binding
	Wrap        key.Binding
	Filter      key.Binding
	Export      key.Binding
	Follow      key.Binding
}

// DefaultKeyMap returns the default key bindings for the log stream view
func DefaultKeyMap() KeyMap {
	base := components.DefaultKeyMap()

	base.ToggleView.SetHelp("tab", "sources view")

	return KeyMap{
		KeyMap: base,
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		RangeSelect: key.NewBinding(
			key.WithKeys("V"),
			key.WithHelp("shift+v", "range select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "hide selected"),
		),
		Restore: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "restore hidden"),
		),
		ClearSel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear selection"),
		),
		Wrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wrap line"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Follow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow"),
		),
	}
}

// ShortHelp returns keybindings for the log view mini help
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Filter, k.Follow, k.ToggleView, k.Quit}
}

// FullHelp returns keybindings for the log view expanded help
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Select, k.RangeSelect, k.SelectAll, k.Delete, k.Restore, k.ClearSel},
		{k.Wrap, k.Filter, k.Export, k.Follow, k.ToggleView, k.Quit},
	}
}
