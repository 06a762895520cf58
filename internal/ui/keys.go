package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the command-mode bindings. They are inactive while a text
// field has focus; esc leaves the field.
type KeyMap struct {
	Quit         key.Binding
	Help         key.Binding
	Up           key.Binding
	Down         key.Binding
	Edit         key.Binding
	Back         key.Binding
	Run          key.Binding
	Download     key.Binding
	Repro        key.Binding
	NotRepro     key.Binding
	Paste        key.Binding
	ClearCommit  key.Binding
	ClearHistory key.Binding
	History      key.Binding
}

var Keys = KeyMap{
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Up:           key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("k/up", "prev field")),
	Down:         key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("j/down", "next field")),
	Edit:         key.NewBinding(key.WithKeys("enter", "i"), key.WithHelp("enter", "edit / toggle")),
	Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave field")),
	Run:          key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "run")),
	Download:     key.NewBinding(key.WithKeys("o", "d"), key.WithHelp("o", "download")),
	Repro:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "repro")),
	NotRepro:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "not repro")),
	Paste:        key.NewBinding(key.WithKeys("v", "ctrl+v"), key.WithHelp("v", "paste commit")),
	ClearCommit:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear commit")),
	ClearHistory: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear history")),
	History:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
}

// ShortHelp and FullHelp let the bindings render through bubbles/help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Download, k.Repro, k.NotRepro, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Edit, k.Back},
		{k.Run, k.Paste, k.ClearCommit},
		{k.Download, k.Repro, k.NotRepro},
		{k.History, k.ClearHistory, k.Help, k.Quit},
	}
}
