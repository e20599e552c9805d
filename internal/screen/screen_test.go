package screen

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tasks/internal/store"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func newModel(t *testing.T) (Model, *store.Store) {
	t.Helper()
	s := store.New()
	return New(NewController(s, nil), 200), s
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func typeLine(t *testing.T, m Model, s string) Model {
	t.Helper()
	return press(t, m, runes(s), enter)
}

func TestControllerAddTask(t *testing.T) {
	s := store.New()
	c := NewController(s, nil)

	if c.AddTask("   ") {
		t.Error("blank title should not clear the input")
	}
	if s.Len() != 0 {
		t.Fatal("blank title must not reach the store")
	}
	if !c.AddTask("  Buy milk ") {
		t.Fatal("AddTask failed")
	}
	if got := s.Tasks()[0].Title; got != "Buy milk" {
		t.Errorf("title: got %q", got)
	}
	if c.AddTask("Buy milk") {
		t.Error("duplicate should keep the input")
	}
	if !c.Pending() || c.dialog.kind != noticeDialog {
		t.Fatal("duplicate should open a notice")
	}
	c.Resolve(true)
	if c.Pending() || s.Len() != 1 {
		t.Errorf("notice resolve: pending=%v len=%d", c.Pending(), s.Len())
	}
}

func TestControllerRemoveTask(t *testing.T) {
	s := store.New()
	c := NewController(s, nil)
	c.AddTask("a")
	id := s.Tasks()[0].ID

	c.RemoveTask(999)
	if c.Pending() {
		t.Fatal("unknown id must not open a dialog")
	}

	c.RemoveTask(id)
	if s.Len() != 1 {
		t.Fatal("store touched before confirmation")
	}
	c.Resolve(false)
	if s.Len() != 1 {
		t.Fatal("declined removal removed the task")
	}

	c.RemoveTask(id)
	c.Resolve(true)
	if s.Len() != 0 {
		t.Fatal("confirmed removal kept the task")
	}
}

func TestAddThroughInput(t *testing.T) {
	m, s := newModel(t)
	m = typeLine(t, m, "Buy milk")

	if s.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", s.Len())
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "Buy milk") {
		t.Errorf("row missing from view:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "1 task") {
		t.Errorf("header count missing:\n%s", m.View())
	}
}

func TestDuplicateKeepsInputAndBlocks(t *testing.T) {
	m, s := newModel(t)
	m = typeLine(t, m, "Buy milk")
	m = typeLine(t, m, "Buy milk")

	if s.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", s.Len())
	}
	if m.input.Value() != "Buy milk" {
		t.Errorf("input should keep the text, got %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "Task already registered") {
		t.Fatalf("notice missing:\n%s", m.View())
	}

	// modal: typing goes nowhere until dismissed
	m = press(t, m, runes("zzz"))
	if m.input.Value() != "Buy milk" || !m.ctl.Pending() {
		t.Fatalf("input changed under the notice: %q", m.input.Value())
	}
	m = press(t, m, enter)
	if m.ctl.Pending() {
		t.Fatal("enter should dismiss the notice")
	}
	if s.Len() != 1 {
		t.Fatal("dismissing must not add")
	}
}

func TestRemoveNeedsConfirmation(t *testing.T) {
	m, s := newModel(t)
	m = typeLine(t, m, "a")
	m = typeLine(t, m, "b")
	m = press(t, m, tab)

	m = press(t, m, runes("d"))
	if !strings.Contains(m.View(), "Remove item") {
		t.Fatalf("confirm dialog missing:\n%s", m.View())
	}
	m = press(t, m, runes("n"))
	if s.Len() != 2 {
		t.Fatal("declined removal removed a task")
	}

	m = press(t, m, runes("d"))
	m = press(t, m, esc)
	if s.Len() != 2 {
		t.Fatal("dismissed removal removed a task")
	}

	m = press(t, m, runes("d"), runes("y"))
	if s.Len() != 1 || s.Tasks()[0].Title != "b" {
		t.Fatalf("after confirm: %+v", s.Tasks())
	}
	if m.list.Len() != 1 {
		t.Errorf("rows: got %d, want 1", m.list.Len())
	}
}

func TestFocusReturnsToInputWhenListEmpties(t *testing.T) {
	m, _ := newModel(t)
	m = typeLine(t, m, "only")
	m = press(t, m, tab, runes("d"), runes("y"))
	if m.focus != focusInput {
		t.Fatal("focus should return to the input once the list is empty")
	}
}

func TestTabWithEmptyListStaysOnInput(t *testing.T) {
	m, _ := newModel(t)
	m = press(t, m, tab)
	if m.focus != focusInput {
		t.Fatal("nothing to focus in an empty list")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	m = typeLine(t, m, "a")

	m = press(t, m, runes("q"))
	if m.input.Value() != "q" {
		t.Fatalf("q should type into the input, got %q", m.input.Value())
	}
	m = press(t, m, tab)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, isQuit := cmd().(tea.QuitMsg); !isQuit {
		t.Fatal("q in the list should quit")
	}
}

func TestScenario(t *testing.T) {
	m, s := newModel(t)

	m = typeLine(t, m, "Buy milk")
	m = typeLine(t, m, "Buy milk")
	m = press(t, m, enter) // dismiss notice
	if s.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", s.Len())
	}
	id := s.Tasks()[0].ID

	m = press(t, m, tab, space)
	if task, _ := s.Get(id); !task.Done {
		t.Fatal("toggle did not mark done")
	}

	// clear the draft, then type the new title
	m = press(t, m, runes("e"))
	if !m.list.Editing() {
		t.Fatal("row should be editing")
	}
	for range "Buy milk" {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = press(t, m, runes("Buy oat milk"), enter)
	task, _ := s.Get(id)
	if task.Title != "Buy oat milk" || !task.Done {
		t.Fatalf("after edit: %+v", task)
	}

	m = press(t, m, runes("d"), runes("y"))
	if s.Len() != 0 {
		t.Fatalf("Len: got %d, want 0", s.Len())
	}
	if !strings.Contains(m.View(), "No tasks yet") {
		t.Errorf("empty list view:\n%s", m.View())
	}
}

func TestEditCancelLeavesStore(t *testing.T) {
	m, s := newModel(t)
	m = typeLine(t, m, "Buy milk")
	v := s.Version()

	m = press(t, m, tab, runes("e"), runes(" later"), esc)
	if s.Version() != v {
		t.Fatal("cancel touched the store")
	}
	if m.list.Editing() {
		t.Fatal("cancel should leave editing")
	}

	// esc while editing did not bounce focus; the list still has it
	if m.focus != focusList {
		t.Fatal("focus should stay on the list")
	}
}

func TestEditToEmptyTitle(t *testing.T) {
	m, s := newModel(t)
	m = typeLine(t, m, "Buy milk")
	id := s.Tasks()[0].ID

	m = press(t, m, tab, runes("e"))
	for range "Buy milk" {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = press(t, m, enter)

	task, ok := s.Get(id)
	if !ok || task.Title != "" {
		t.Fatalf("after edit: %+v", task)
	}
	if m.list.Editing() {
		t.Error("commit should leave editing")
	}
	if ed, _ := m.list.Row(id); ed.Draft() != "" {
		t.Errorf("draft: got %q, want empty", ed.Draft())
	}
}

func TestWindowResize(t *testing.T) {
	m, _ := newModel(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Errorf("size: %dx%d", m.width, m.height)
	}
	if m.help.Width != 116 {
		t.Errorf("help width: got %d", m.help.Width)
	}
}
