package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Send        key.Binding
	FocusNext   key.Binding
	ClearChat   key.Binding
	CopyAnswer  key.Binding
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding
	Refresh     key.Binding
	Filter      key.Binding
	LeaveFilter key.Binding
	Example     key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		ClearChat: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear chat"),
		),
		CopyAnswer: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy answer"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open entry"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		LeaveFilter: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "done"),
		),
		Example: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4"),
			key.WithHelp("alt+1..4", "example question"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// exampleIndex maps an alt+N key string to the example slot it selects.
func exampleIndex(keyStr string) int {
	switch keyStr {
	case "alt+1":
		return 0
	case "alt+2":
		return 1
	case "alt+3":
		return 2
	case "alt+4":
		return 3
	}
	return -1
}
