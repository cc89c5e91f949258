package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the host's bindings. Arrow keys go through the document so the
// snap controller sees them as keydown events; the rest call the controller
// or the host directly.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	First  key.Binding
	Last   key.Binding
	Jump   key.Binding
	Reload key.Binding
	Toggle key.Binding
	Pager  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous section"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next section"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first section"),
		),
		Last: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last section"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to section"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload deck"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle snapping"),
		),
		Pager: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in pager"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Pager, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last, k.Jump},
		{k.Reload, k.Toggle, k.Pager},
		{k.Help, k.Quit},
	}
}
