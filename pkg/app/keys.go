package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the shell's key bindings.
type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Install  key.Binding
	Dismiss  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev panel")),
		Expand:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand")),
		Collapse: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "collapse")),
		Install:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "install app")),
		Dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide install offer")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Install, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Expand, k.Collapse},
		{k.Install, k.Dismiss},
		{k.Help, k.Quit},
	}
}
