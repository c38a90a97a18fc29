// Package screen composes the two todo lists, their hydration from storage and
// the persistence of every change.
//
// A Screen starts Uninitialized. Load moves it through Loading to Ready; gestures
// made before it is Ready fail with todo.ErrNotReady. Each successful mutation
// enqueues a snapshot of the affected list(s) to the persistence writer.
package screen

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ShayCichocki/todolist/internal/persist"
	"github.com/ShayCichocki/todolist/internal/store"
	"github.com/ShayCichocki/todolist/internal/todo"
	"github.com/ShayCichocki/todolist/pkg/models"
)

// Source loads a stored list into dst. It reports false when nothing usable is stored.
type Source interface {
	Load(ctx context.Context, key string, dst any) bool
}

// Sink accepts snapshots for ordered persistence.
type Sink interface {
	Enqueue(snap persist.Snapshot) error
}

// Screen is the todo screen's state.
type Screen struct {
	source Source
	sink   Sink
	logger *log.Logger

	mu        sync.Mutex
	lifecycle todo.Lifecycle
	todos     *todo.TodoList
	completed *todo.CompletedList
}

// New creates an uninitialized screen.
func New(source Source, sink Sink, logger *log.Logger) *Screen {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Screen{
		source:    source,
		sink:      sink,
		logger:    logger,
		todos:     todo.NewTodoList(nil),
		completed: todo.NewCompletedList(nil),
	}
}

// Load hydrates both lists from storage, reading the two keys concurrently.
// A list that cannot be loaded starts empty. Calling Load on a screen that is
// already loading or ready does nothing.
func (s *Screen) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.lifecycle != todo.Uninitialized {
		s.mu.Unlock()
		return nil
	}
	s.lifecycle = todo.Loading
	s.mu.Unlock()

	var (
		todos     []models.TodoItem
		completed []models.CompletedTask
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if !s.source.Load(gctx, models.KeyTodos, &todos) {
			todos = nil
		}
		return nil
	})
	g.Go(func() error {
		if !s.source.Load(gctx, models.KeyCompletedTasks, &completed) {
			completed = nil
		}
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		s.lifecycle = todo.Uninitialized
		return fmt.Errorf("load lists: %w", err)
	}
	s.todos.Replace(todos)
	s.completed.Replace(completed)
	s.lifecycle = todo.Ready
	s.logger.Debug("lists loaded", "todos", len(todos), "completed", len(completed))
	return nil
}

// Lifecycle returns the hydration state.
func (s *Screen) Lifecycle() todo.Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle
}

// Add appends a new todo item. Text that is empty after trimming fails with todo.ErrEmptyText.
func (s *Screen) Add(text string) (models.TodoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return models.TodoItem{}, err
	}
	item, err := s.todos.Add(text)
	if err != nil {
		return models.TodoItem{}, err
	}
	s.persistTodos()
	return item, nil
}

// BeginEdit puts the todo at index into edit mode.
func (s *Screen) BeginEdit(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	return s.todos.BeginEdit(index)
}

// SetDraft updates the text being edited.
func (s *Screen) SetDraft(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	return s.todos.SetDraft(text)
}

// CancelEdit leaves edit mode without changes.
func (s *Screen) CancelEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	s.todos.CancelEdit()
	return nil
}

// CommitEdit stores text as the edited item's text and leaves edit mode.
func (s *Screen) CommitEdit(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.todos.CommitEdit(text); err != nil {
		return err
	}
	s.persistTodos()
	return nil
}

// CommitDraft commits the current draft text.
func (s *Screen) CommitDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	edit, _, ok := s.todos.Editing()
	if !ok {
		return todo.ErrNotEditing
	}
	if err := s.todos.CommitEdit(edit.Draft); err != nil {
		return err
	}
	s.persistTodos()
	return nil
}

// ToggleTodo flips selection of the todo at index.
func (s *Screen) ToggleTodo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	return s.todos.ToggleSelect(index)
}

// ToggleCompleted flips selection of the completed task at index.
func (s *Screen) ToggleCompleted(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	return s.completed.ToggleSelect(index)
}

// PromoteSelected moves the selected todos to the end of the completed list,
// in the order they were selected. It returns how many moved.
func (s *Screen) PromoteSelected() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return 0, err
	}
	taken := s.todos.TakeSelected()
	texts := make([]string, len(taken))
	for i, item := range taken {
		texts[i] = item.Text
	}
	s.completed.Append(texts...)
	s.persistTodos()
	s.persistCompleted()
	return len(taken), nil
}

// DeleteSelected removes the selected entries of both lists.
// It returns how many were removed from each.
func (s *Screen) DeleteSelected() (todos, completed int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return 0, 0, err
	}
	todos = s.todos.DeleteSelected()
	completed = s.completed.DeleteSelected()
	s.persistTodos()
	s.persistCompleted()
	return todos, completed, nil
}

// DeleteSelectedTodos removes the selected todos.
func (s *Screen) DeleteSelectedTodos() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return 0, err
	}
	n := s.todos.DeleteSelected()
	s.persistTodos()
	return n, nil
}

// DeleteSelectedCompleted removes the selected completed tasks.
func (s *Screen) DeleteSelectedCompleted() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return 0, err
	}
	n := s.completed.DeleteSelected()
	s.persistCompleted()
	return n, nil
}

func (s *Screen) ready() error {
	if s.lifecycle != todo.Ready {
		return todo.ErrNotReady
	}
	return nil
}

func (s *Screen) persistTodos() {
	s.enqueue(models.KeyTodos, s.todos.Items())
}

func (s *Screen) persistCompleted() {
	s.enqueue(models.KeyCompletedTasks, s.completed.Tasks())
}

func (s *Screen) enqueue(key string, v any) {
	data, err := store.Encode(v)
	if err != nil {
		s.logger.Error("error encoding snapshot", "key", key, "err", err)
		return
	}
	if err := s.sink.Enqueue(persist.Snapshot{Key: key, Value: data}); err != nil {
		s.logger.Error("error queueing snapshot", "key", key, "err", err)
	}
}
