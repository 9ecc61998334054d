package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit         key.Binding
	Help         key.Binding
	Submit       key.Binding
	Theme        key.Binding
	Export       key.Binding
	ExportCharts key.Binding
	Algorithm    key.Binding
	Regenerate   key.Binding
	Open         key.Binding
	Delete       key.Binding
	ClearAll     key.Binding
	Select       key.Binding
	Inspect      key.Binding
	PrevBlock    key.Binding
	NextBlock    key.Binding
	ScrollLeft   key.Binding
	ScrollRight  key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
}

var Keys = KeyMap{
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Submit:       key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "schedule")),
	Theme:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
	Export:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export json")),
	ExportCharts: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "export json + charts")),
	Algorithm:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "next algorithm")),
	Regenerate:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "random jobs")),
	Open:         key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open solver")),
	Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	ClearAll:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear matching")),
	Select:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Inspect:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view export")),
	PrevBlock:    key.NewBinding(key.WithKeys("left", "["), key.WithHelp("←/[", "prev job")),
	NextBlock:    key.NewBinding(key.WithKeys("right", "]"), key.WithHelp("→/]", "next job")),
	ScrollLeft:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "scroll left")),
	ScrollRight:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "scroll right")),
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	PageUp:       key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:     key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
}
