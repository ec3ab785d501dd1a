package internal

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the form's key bindings.
type keyMap struct {
	next   key.Binding
	prev   key.Binding
	up     key.Binding
	down   key.Binding
	left   key.Binding
	right  key.Binding
	toggle key.Binding
	press  key.Binding
	about  key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "toggle"),
		),
		press: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		about: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "about"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.toggle, k.press, k.about, k.quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.up, k.down, k.left, k.right},
		{k.toggle, k.press, k.about, k.quit},
	}
}
