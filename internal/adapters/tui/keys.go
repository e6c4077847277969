package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down     key.Binding
	Open         key.Binding
	Gallery      key.Binding
	Thumb        key.Binding
	Prev, Next   key.Binding
	Back         key.Binding
	Edit, Save   key.Binding
	Delete       key.Binding
	Reload, Quit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Gallery: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gallery")),
		Thumb: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "thumbnail"),
		),
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Delete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func helpLine(bs ...key.Binding) string {
	out := ""
	for i, b := range bs {
		if i > 0 {
			out += " · "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
