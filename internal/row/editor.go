// Package row holds the transient interaction state of a single list row.
//
// An Editor belongs to exactly one task id and is thrown away with its row;
// it never writes to the store itself, it only hands the draft to an
// EditFunc on commit.
package row

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tasks/internal/model"
)

// State of a row.
type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// Affordance is an action a row currently offers.
type Affordance string

const (
	Toggle Affordance = "toggle"
	Edit   Affordance = "edit"
	Remove Affordance = "remove"
	Commit Affordance = "commit"
	Cancel Affordance = "cancel"
)

// EditFunc receives the committed draft.
type EditFunc func(id int64, title string)

// Editor is the per-row editing state machine.
type Editor struct {
	taskID int64
	state  State
	draft  textinput.Model
}

// New returns a viewing editor for t with the draft set to its title.
func New(t model.Task, charLimit int) Editor {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Edit task title..."
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.SetValue(t.Title)
	return Editor{taskID: t.ID, draft: ti}
}

func (e Editor) TaskID() int64 { return e.taskID }
func (e Editor) State() State  { return e.state }
func (e Editor) Editing() bool { return e.state == Editing }
func (e Editor) Draft() string { return e.draft.Value() }
func (e Editor) Focused() bool { return e.draft.Focused() }
func (e Editor) View() string  { return e.draft.View() }

// Affordances lists what the row offers in its current state.
func (e Editor) Affordances() []Affordance {
	if e.state == Editing {
		return []Affordance{Commit, Cancel}
	}
	return []Affordance{Toggle, Edit, Remove}
}

// Allows reports whether a is currently offered.
func (e Editor) Allows(a Affordance) bool {
	for _, x := range e.Affordances() {
		if x == a {
			return true
		}
	}
	return false
}

// Begin enters Editing with the draft reset to t's current title and the
// input focused. It is a no-op while already editing.
func (e *Editor) Begin(t model.Task) tea.Cmd {
	if e.state == Editing {
		return nil
	}
	e.state = Editing
	e.draft.SetValue(t.Title)
	e.draft.CursorEnd()
	return e.draft.Focus()
}

// Cancel discards the draft and returns to Viewing without touching the store.
func (e *Editor) Cancel(t model.Task) {
	e.draft.SetValue(t.Title)
	e.draft.Blur()
	e.state = Viewing
}

// Commit hands the draft to edit and returns to Viewing, whether or not the
// title actually changed.
func (e *Editor) Commit(edit EditFunc) {
	if e.state != Editing {
		return
	}
	if edit != nil {
		edit(e.taskID, e.draft.Value())
	}
	e.draft.Blur()
	e.state = Viewing
}

// Refresh keeps the idle draft in step with the task's current title.
func (e *Editor) Refresh(t model.Task) {
	if e.state == Viewing && e.draft.Value() != t.Title {
		e.draft.SetValue(t.Title)
	}
}

// Update feeds key input to the draft while editing.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	if e.state != Editing {
		return e, nil
	}
	var cmd tea.Cmd
	e.draft, cmd = e.draft.Update(msg)
	return e, cmd
}
