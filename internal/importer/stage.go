package importer

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/ftsep/internal/library"
)

// Session describes one import run.
type Session struct {
	Library *library.Library
	Paths   []string
	Logger  *log.Logger
}

// Task is one directory worth of newly imported items.
type Task struct {
	Dir   string
	items []*library.Item
}

// NewTask creates a task over items that are already in the library.
func NewTask(dir string, items ...*library.Item) *Task {
	return &Task{Dir: dir, items: items}
}

// ImportedItems returns the items the task added, in file name order.
func (t *Task) ImportedItems() []*library.Item {
	return t.items
}

// Stage is notified after a task's items have been added to the library.
type Stage interface {
	Imported(session *Session, task *Task) error
}

// StageFunc adapts a function to [Stage].
type StageFunc func(session *Session, task *Task) error

func (f StageFunc) Imported(session *Session, task *Task) error {
	return f(session, task)
}
