package listview

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/Makepad-fr/tasks/internal/row"
)

// KeyMap holds the row bindings.
type KeyMap struct {
	Toggle key.Binding
	Edit   key.Binding
	Remove key.Binding
	Commit key.Binding
	Cancel key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Remove: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k KeyMap) binding(a row.Affordance) key.Binding {
	switch a {
	case row.Toggle:
		return k.Toggle
	case row.Edit:
		return k.Edit
	case row.Remove:
		return k.Remove
	case row.Commit:
		return k.Commit
	default:
		return k.Cancel
	}
}
