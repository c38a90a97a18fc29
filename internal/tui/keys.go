package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the todo screen.
type KeyMap struct {
	Continue key.Binding
	Focus    key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Edit     key.Binding
	Save     key.Binding
	Cancel   key.Binding
	Promote  key.Binding
	Delete   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Continue: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Save:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Promote:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move to completed")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete selected")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Toggle, k.Promote, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Up, k.Down},
		{k.Toggle, k.Promote, k.Delete},
		{k.Edit, k.Save, k.Cancel},
		{k.Help, k.Quit},
	}
}

// editKeys are the bindings shown while an item is being edited.
type editKeys struct {
	KeyMap
}

func (k editKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel, k.Quit}
}

func (k editKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
