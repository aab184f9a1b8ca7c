package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit            key.Binding
	Submit          key.Binding
	ToggleOriginal  key.Binding
	ToggleRewritten key.Binding
	ToggleDebug     key.Binding
	ScrollUp        key.Binding
	ScrollDown      key.Binding

	FieldUp   key.Binding
	FieldDown key.Binding
	OptPrev   key.Binding
	OptNext   key.Binding
	Start     key.Binding
	Cancel    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:            key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Submit:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		ToggleOriginal:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "original")),
		ToggleRewritten: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "rewritten")),
		ToggleDebug:     key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "debug")),
		ScrollUp:        key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "scroll up")),
		ScrollDown:      key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "scroll down")),

		FieldUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "field")),
		FieldDown: key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "field")),
		OptPrev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		OptNext:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Start:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "quit")),
	}
}

// bindings adapts a flat list to help.KeyMap.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding {
	return b
}

func (b bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{b}
}

func (k keyMap) activeHelp() bindings {
	return bindings{k.Submit, k.ToggleOriginal, k.ToggleRewritten, k.ToggleDebug, k.ScrollUp, k.ScrollDown, k.Quit}
}

func (k keyMap) dialogHelp() bindings {
	return bindings{k.FieldUp, k.FieldDown, k.OptPrev, k.OptNext, k.Start, k.Cancel}
}
