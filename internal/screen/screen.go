// Package screen is the interactive to-do screen: a header with the task
// count, an input to add tasks and the task list.
package screen

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tasks/internal/listview"
	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/ui"
)

const (
	appTitle = "to.do"

	defaultWidth  = 80
	defaultHeight = 24

	// header (2) + input box (3) + help (1) + gaps (2) + outer panel (2)
	chromeHeight = 10
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type keyMap struct {
	Quit    key.Binding
	Focus   key.Binding
	Add     key.Binding
	Yes     key.Binding
	No      key.Binding
	Dismiss key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Focus:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch")),
		Add:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Yes:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:      key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "ok")),
	}
}

// Model is the Bubble Tea model of the screen.
type Model struct {
	ctl   *Controller
	input textinput.Model
	list  listview.Model
	help  help.Model
	keys  keyMap

	focus         focusArea
	width, height int
}

// New builds the screen over ctl. charLimit caps typed titles.
func New(ctl *Controller, charLimit int) Model {
	ti := textinput.New()
	ti.Prompt = "+ "
	ti.Placeholder = "Add a new task..."
	ti.CharLimit = charLimit
	ti.Focus()

	m := Model{
		ctl:    ctl,
		input:  ti,
		list:   listview.New(charLimit, defaultWidth, defaultHeight-chromeHeight),
		help:   help.New(),
		keys:   defaultKeyMap(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.list.Sync(ctl.Tasks())
	m.layout()
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.ctl.Pending() {
			return m.updateDialog(msg)
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	// blink and other ticks
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.list, cmd = m.list.Update(msg, m.ctl)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ctl.dialog.kind {
	case confirmDialog:
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.ctl.Resolve(true)
		case key.Matches(msg, m.keys.No):
			m.ctl.Resolve(false)
		}
	default:
		if key.Matches(msg, m.keys.Dismiss) {
			m.ctl.Resolve(false)
		}
	}
	cmd := m.sync()
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		if m.ctl.AddTask(m.input.Value()) {
			m.input.Reset()
		}
		cmd := m.sync()
		return m, cmd
	case key.Matches(msg, m.keys.Focus), msg.Type == tea.KeyEsc:
		if m.list.Len() == 0 {
			return m, nil
		}
		m.focus = focusList
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.list.Editing() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Focus), msg.String() == "a":
			m.focus = focusInput
			cmd := m.input.Focus()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg, m.ctl)
	cmd = tea.Batch(cmd, m.sync())
	return m, cmd
}

// sync re-projects the store into the list. Rows are rebuilt from the
// current collection every time, never patched.
func (m *Model) sync() tea.Cmd {
	cmd := m.list.Sync(m.ctl.Tasks())
	if m.list.Len() == 0 && m.focus == focusList {
		m.focus = focusInput
		return tea.Batch(cmd, m.input.Focus())
	}
	return cmd
}

func (m *Model) layout() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	h := m.height - chromeHeight
	if h < 1 {
		h = 1
	}
	m.input.Width = w - 6
	m.list.SetSize(w, h)
	m.help.Width = w
}

func (m Model) View() string {
	t := ui.Current()
	tasks := m.ctl.Tasks()

	done, pending := model.Stats(tasks)
	header := ui.Counter(appTitle, done, pending) + "\n" +
		t.Muted.Render(ui.ProgressBar(done, done+pending, 28))

	input := t.Input.Render(m.input.View())

	body := m.list.View()
	if d := m.ctl.dialog; d != nil {
		body = m.dialogView(d)
	}

	return ui.PanelString([]string{
		header,
		input,
		body,
		"",
		m.help.ShortHelpView(m.helpKeys()),
	})
}

func (m Model) dialogView(d *dialog) string {
	t := ui.Current()
	hint := t.Help.Render("enter: ok")
	if d.kind == confirmDialog {
		hint = t.Help.Render("y: yes  n: no")
	}
	box := t.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render(d.title),
		d.body,
		"",
		hint,
	))
	return lipgloss.Place(m.width-4, lipgloss.Height(box), lipgloss.Center, lipgloss.Top, box)
}

func (m Model) helpKeys() []key.Binding {
	switch {
	case m.ctl.Pending():
		return nil
	case m.focus == focusInput:
		return []key.Binding{m.keys.Add, m.keys.Focus}
	case m.list.Editing():
		return m.list.HelpKeys()
	default:
		return append(m.list.HelpKeys(), m.keys.Focus, m.keys.Quit)
	}
}
