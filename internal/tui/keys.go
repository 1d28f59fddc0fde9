package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Hide   key.Binding
	Raise  key.Binding
	Delete key.Binding
	Step   key.Binding
	Dump   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next window")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous window")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "move left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move right")),
		Hide:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide/show")),
		Raise:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "raise")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Step:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next step")),
		Dump:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "screen dump")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Hide, k.Raise, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down, k.Left, k.Right},
		{k.Hide, k.Raise, k.Delete, k.Step, k.Dump},
		{k.Help, k.Quit},
	}
}
