package screen

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/store"
)

type dialogKind int

const (
	noticeDialog dialogKind = iota
	confirmDialog
)

// dialog is the modal currently on screen. While one is open the rest of
// the screen takes no input.
type dialog struct {
	kind   dialogKind
	title  string
	body   string
	taskID int64
}

// Controller turns user intents into store calls. It is the callback
// surface shared by the input, the list and the rows.
type Controller struct {
	store  *store.Store
	log    *log.Logger
	dialog *dialog
}

// NewController returns a controller over s with no dialog open.
func NewController(s *store.Store, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{store: s, log: logger}
}

// AddTask adds a trimmed, non-blank title. It reports whether the input
// should be cleared; a duplicate opens a notice and keeps the input.
func (c *Controller) AddTask(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	task, err := c.store.Add(title)
	switch {
	case errors.Is(err, store.ErrDuplicateTitle):
		c.dialog = &dialog{
			kind:  noticeDialog,
			title: "Task already registered",
			body:  "You cannot register a task with the same name.",
		}
		return false
	case err != nil:
		c.log.Error("add task", "err", err)
		return false
	}
	c.log.Info("input submitted", "id", task.ID, "count", c.store.Len())
	return true
}

func (c *Controller) ToggleTaskDone(id int64) { c.store.Toggle(id) }

func (c *Controller) EditTask(id int64, title string) { c.store.Edit(id, title) }

// RemoveTask asks for confirmation; the store is only touched once the
// dialog is answered.
func (c *Controller) RemoveTask(id int64) {
	task, ok := c.store.Get(id)
	if !ok {
		return
	}
	c.dialog = &dialog{
		kind:   confirmDialog,
		title:  "Remove item",
		body:   "Are you sure you want to remove \"" + task.Title + "\"?",
		taskID: id,
	}
}

// Resolve closes the open dialog. For a removal, yes removes the task.
func (c *Controller) Resolve(yes bool) {
	d := c.dialog
	c.dialog = nil
	if d == nil || d.kind != confirmDialog {
		return
	}
	answer := store.Declined
	if yes {
		answer = store.Confirmed
	}
	if c.store.Remove(d.taskID, answer) {
		c.log.Info("task removed", "id", d.taskID)
	}
}

// Pending reports whether a dialog is waiting for an answer.
func (c *Controller) Pending() bool { return c.dialog != nil }

// Tasks is the current collection, for rendering.
func (c *Controller) Tasks() []model.Task { return c.store.Tasks() }
