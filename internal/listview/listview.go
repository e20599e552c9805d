// Package listview projects the store's tasks into list rows and forwards
// row intents back through Callbacks. It never mutates tasks itself.
package listview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/row"
	"github.com/Makepad-fr/tasks/internal/ui"
)

const maxTitleRunes = 80

// Callbacks receive the row intents. The screen implements them on top of
// the store.
type Callbacks interface {
	ToggleTaskDone(id int64)
	RemoveTask(id int64)
	EditTask(id int64, title string)
}

// listItem adapts model.Task to bubbles/list.Item
type listItem struct {
	task model.Task
}

func (i listItem) FilterValue() string { return i.task.Title }

// Model is the list renderer.
type Model struct {
	list      list.Model
	rows      map[int64]row.Editor // shared with the delegate
	keys      KeyMap
	charLimit int
}

// New returns an empty list of the given size.
func New(charLimit, width, height int) Model {
	rows := map[int64]row.Editor{}
	l := list.New(nil, itemDelegate{rows: rows}, width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("task", "tasks")

	return Model{
		list:      l,
		rows:      rows,
		keys:      DefaultKeyMap(),
		charLimit: charLimit,
	}
}

// Sync rebuilds every row from tasks. Editors of tasks that are gone are
// dropped; surviving editors keep their state.
func (m *Model) Sync(tasks []model.Task) tea.Cmd {
	items := make([]list.Item, 0, len(tasks))
	live := make(map[int64]struct{}, len(tasks))
	for _, t := range tasks {
		items = append(items, listItem{task: t})
		live[t.ID] = struct{}{}
		if ed, ok := m.rows[t.ID]; ok {
			ed.Refresh(t)
			m.rows[t.ID] = ed
		} else {
			m.rows[t.ID] = row.New(t, m.charLimit)
		}
	}
	for id := range m.rows {
		if _, ok := live[id]; !ok {
			delete(m.rows, id)
		}
	}

	cmd := m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	return cmd
}

func (m *Model) SetSize(width, height int) { m.list.SetSize(width, height) }

// Len is the number of rendered rows.
func (m Model) Len() int { return len(m.list.Items()) }

// Selected returns the task under the cursor.
func (m Model) Selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

// Row returns the editor of the given task.
func (m Model) Row(id int64) (row.Editor, bool) {
	ed, ok := m.rows[id]
	return ed, ok
}

// Editing reports whether the selected row is being edited.
func (m Model) Editing() bool {
	t, ok := m.Selected()
	if !ok {
		return false
	}
	return m.rows[t.ID].Editing()
}

// HelpKeys returns the bindings the selected row offers right now.
func (m Model) HelpKeys() []key.Binding {
	t, ok := m.Selected()
	if !ok {
		return nil
	}
	ed := m.rows[t.ID]
	out := make([]key.Binding, 0, 3)
	for _, a := range ed.Affordances() {
		out = append(out, m.keys.binding(a))
	}
	return out
}

// Update routes a message to the selected row and forwards intents to cb.
func (m Model) Update(msg tea.Msg, cb Callbacks) (Model, tea.Cmd) {
	task, ok := m.Selected()
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	ed := m.rows[task.ID]

	if ed.Editing() {
		var cmd tea.Cmd
		if km, isKey := msg.(tea.KeyMsg); isKey {
			switch {
			case key.Matches(km, m.keys.Commit):
				ed.Commit(cb.EditTask)
			case key.Matches(km, m.keys.Cancel):
				ed.Cancel(task)
			default:
				ed, cmd = ed.Update(km)
			}
		} else {
			ed, cmd = ed.Update(msg)
		}
		m.rows[task.ID] = ed
		return m, cmd
	}

	if km, isKey := msg.(tea.KeyMsg); isKey {
		switch {
		case key.Matches(km, m.keys.Toggle):
			cb.ToggleTaskDone(task.ID)
			return m, nil
		case key.Matches(km, m.keys.Edit):
			cmd := ed.Begin(task)
			m.rows[task.ID] = ed
			return m, cmd
		case key.Matches(km, m.keys.Remove):
			cb.RemoveTask(task.ID)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return ui.Current().Muted.Render("No tasks yet")
	}
	return m.list.View()
}

// Custom delegate to control how rows render (single line)
type itemDelegate struct {
	rows map[int64]row.Editor
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := truncate(it.task.Title)
	if it.task.Done {
		box = t.Success.Render(t.BoxChecked)
		text = t.DoneText.Render(text)
	}
	if ed, ok := d.rows[it.task.ID]; ok && ed.Editing() {
		text = ed.View()
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxTitleRunes {
		return string(r[:maxTitleRunes-3]) + "..."
	}
	return s
}
