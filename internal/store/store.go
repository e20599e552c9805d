// Package store owns the authoritative, in-memory task collection.
//
// Every mutation replaces the collection with a freshly built slice holding
// fresh records, so a snapshot returned by Tasks is never written to again.
// Nothing here is persisted; the collection lives as long as the process.
package store

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasks/internal/model"
)

var (
	// ErrDuplicateTitle is returned by Add when a task with the exact same
	// title is already registered.
	ErrDuplicateTitle = errors.New("task already registered")

	// ErrEmptyTitle is returned by Add for a blank title.
	ErrEmptyTitle = errors.New("empty title")
)

// Confirmer answers the yes/no question asked before a task is removed.
type Confirmer interface {
	ConfirmRemove(t model.Task) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(t model.Task) bool

func (f ConfirmFunc) ConfirmRemove(t model.Task) bool { return f(t) }

// Confirmed and Declined are answers that were already collected elsewhere,
// e.g. by a modal dialog.
var (
	Confirmed Confirmer = ConfirmFunc(func(model.Task) bool { return true })
	Declined  Confirmer = ConfirmFunc(func(model.Task) bool { return false })
)

// Store holds tasks in insertion order. It is not safe for concurrent use;
// the screen drives it from a single event loop.
type Store struct {
	tasks   []model.Task
	lastID  int64
	version uint64
	log     *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation traces.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		tasks: []model.Task{},
		log:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len is the number of tasks, as shown by the header.
func (s *Store) Len() int { return len(s.tasks) }

// Version changes every time the collection is replaced.
func (s *Store) Version() uint64 { return s.version }

// Get returns the task with the given id.
func (s *Store) Get(id int64) (model.Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// Add appends a new pending task. Titles are compared exactly.
func (s *Store) Add(title string) (model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return model.Task{}, ErrEmptyTitle
	}
	for _, t := range s.tasks {
		if t.Title == title {
			s.log.Warn("duplicate title rejected", "title", title, "existing", t.ID)
			return model.Task{}, ErrDuplicateTitle
		}
	}
	s.lastID++
	task := model.Task{ID: s.lastID, Title: title}

	next := make([]model.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	s.replace(append(next, task))
	s.log.Debug("task added", "id", task.ID, "title", task.Title, "count", len(s.tasks))
	return task, nil
}

// Toggle flips the done flag. Unknown ids are ignored.
func (s *Store) Toggle(id int64) {
	ok := s.update(id, func(t model.Task) model.Task {
		t.Done = !t.Done
		return t
	})
	if ok {
		s.log.Debug("task toggled", "id", id)
	}
}

// Edit renames a task. Unknown ids are ignored. The title is taken as is,
// empty included; duplicates are only checked on Add.
func (s *Store) Edit(id int64, title string) {
	ok := s.update(id, func(t model.Task) model.Task {
		t.Title = title
		return t
	})
	if ok {
		s.log.Debug("task edited", "id", id, "title", title)
	}
}

// Remove deletes the task once c agrees. It reports whether a task was
// removed; an unknown id, a nil confirmer or a "no" all leave the
// collection untouched.
func (s *Store) Remove(id int64, c Confirmer) bool {
	i := s.indexOf(id)
	if i < 0 || c == nil {
		return false
	}
	if !c.ConfirmRemove(s.tasks[i]) {
		s.log.Debug("removal declined", "id", id)
		return false
	}
	// the confirmer may have run arbitrary code; look the id up again
	i = s.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]model.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	s.replace(next)
	s.log.Debug("task removed", "id", id, "count", len(s.tasks))
	return true
}

func (s *Store) update(id int64, fn func(model.Task) model.Task) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]model.Task, len(s.tasks))
	copy(next, s.tasks)
	next[i] = fn(next[i])
	s.replace(next)
	return true
}

func (s *Store) replace(next []model.Task) {
	s.tasks = next
	s.version++
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
