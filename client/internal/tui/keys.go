package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit       key.Binding
	TabHome    key.Binding
	TabAdd     key.Binding
	TabProfile key.Binding
	Back       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	TogglePass key.Binding
	SwitchAuth key.Binding
	Up         key.Binding
	Down       key.Binding
	Expand     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Search     key.Binding
	Refresh    key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	SignOut    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		TabHome:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "home")),
		TabAdd:     key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "add item")),
		TabProfile: key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "profile")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		TogglePass: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "show password")),
		SwitchAuth: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "login / sign up")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Expand:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Confirm:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		SignOut:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "log out")),
	}
}
