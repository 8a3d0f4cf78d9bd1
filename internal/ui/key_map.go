package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
//
// Letter bindings only apply on screens without a focused text input.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	enter   key.Binding
	back    key.Binding
	tab     key.Binding
	toggle  key.Binding
	newNote key.Binding
	notes   key.Binding
	sort    key.Binding
	remove  key.Binding
	login   key.Binding
	logout  key.Binding
	flip    key.Binding
	reveal  key.Binding
	copy    key.Binding
	yes     key.Binding
	no      key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		toggle:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "login/signup")),
		newNote: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
		notes:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "my notes")),
		sort:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort")),
		remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		login:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "sign in")),
		logout:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "logout")),
		flip:    key.NewBinding(key.WithKeys(" ", "f"), key.WithHelp("space", "flip")),
		reveal:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "check answer")),
		copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy summary")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right, k.enter},
		{k.back, k.tab, k.newNote, k.sort, k.remove},
		{k.flip, k.reveal, k.copy, k.login, k.logout, k.quit},
	}
}
