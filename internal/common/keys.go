package common

import "github.com/charmbracelet/bubbles/key"

type HelpBindable interface {
	HelpBindings() []key.Binding
}

type FullHelpBindable interface {
	FullHelpBindings() []key.Binding
}

type KeyMap struct {
	Help   key.Binding
	Cancel key.Binding
	Quit   key.Binding
	Logout key.Binding

	Profile key.Binding
	Hobbies key.Binding
	Edit    key.Binding
	Submit  key.Binding
	Reload  key.Binding
	NextTab key.Binding
	PrevTab key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab},
		{k.Help, k.Logout, k.Quit},
	}
}

var Keys = KeyMap{
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+q"),
		key.WithHelp("ctrl+q", "logout"),
	),
	Profile: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "profile"),
	),
	Hobbies: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "hobbies"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit nickname"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "check / save"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev tab"),
	),
}
