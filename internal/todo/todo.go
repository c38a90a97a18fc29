// Package todo holds the in-memory state of the todo screen: the pending list with its
// selection and edit mode, and the completed list with its selection.
//
// Operations take positions in the currently rendered list and resolve them to stable
// item IDs immediately, so a position that no longer exists is rejected instead of
// silently pointing at a different item.
package todo

import (
	"errors"
	"slices"
	"strings"

	"github.com/ShayCichocki/todolist/pkg/models"
)

var (
	// ErrEmptyText is returned when adding an item whose text is empty after trimming.
	ErrEmptyText = errors.New("please enter something to do")
	// ErrStaleIndex is returned when a position does not refer to an item in the current list.
	ErrStaleIndex = errors.New("index out of range")
	// ErrNotEditing is returned when committing while no item is in edit mode.
	ErrNotEditing = errors.New("no item is being edited")
	// ErrNotReady is returned for gestures that arrive before the lists are loaded.
	ErrNotReady = errors.New("lists are not loaded yet")
)

// Edit describes the item currently in edit mode.
type Edit struct {
	ID    string
	Draft string
}

// TodoList is the pending list together with its selection and edit state.
type TodoList struct {
	items     []models.TodoItem
	selection Selection
	edit      *Edit
}

// NewTodoList creates a list holding a copy of items.
func NewTodoList(items []models.TodoItem) *TodoList {
	l := &TodoList{}
	l.Replace(items)
	return l
}

// Replace swaps in a new set of items, e.g. after loading from storage.
// Selection and edit state referring to vanished items are dropped.
func (l *TodoList) Replace(items []models.TodoItem) {
	l.items = models.EnsureIDs(slices.Clone(items))
	l.prune()
}

// Add appends a new item. Text is kept as typed; only the emptiness check trims.
func (l *TodoList) Add(text string) (models.TodoItem, error) {
	if strings.TrimSpace(text) == "" {
		return models.TodoItem{}, ErrEmptyText
	}
	item := models.NewTodoItem(text)
	l.items = append(l.items, item)
	return item, nil
}

// BeginEdit puts the item at index into edit mode, seeded with its current text.
// Any other item leaves edit mode. Selection of the item is left as is.
func (l *TodoList) BeginEdit(index int) error {
	item, ok := l.at(index)
	if !ok {
		return ErrStaleIndex
	}
	l.edit = &Edit{ID: item.ID, Draft: item.Text}
	return nil
}

// SetDraft updates the draft text of the item in edit mode.
func (l *TodoList) SetDraft(text string) error {
	if l.edit == nil {
		return ErrNotEditing
	}
	l.edit.Draft = text
	return nil
}

// CancelEdit leaves edit mode without changing the item.
func (l *TodoList) CancelEdit() {
	l.edit = nil
}

// CommitEdit replaces the text of the item in edit mode and leaves edit mode.
func (l *TodoList) CommitEdit(text string) error {
	if l.edit == nil {
		return ErrNotEditing
	}
	i := l.indexOf(l.edit.ID)
	l.edit = nil
	if i < 0 {
		return ErrStaleIndex
	}
	l.items[i].Text = text
	return nil
}

// ToggleSelect adds or removes the item at index from the selection.
func (l *TodoList) ToggleSelect(index int) error {
	item, ok := l.at(index)
	if !ok {
		return ErrStaleIndex
	}
	l.selection.Toggle(item.ID)
	return nil
}

// TakeSelected removes the selected items and returns them in selection order.
// The selection is empty afterward.
func (l *TodoList) TakeSelected() []models.TodoItem {
	if l.selection.Len() == 0 {
		return nil
	}
	taken := make([]models.TodoItem, 0, l.selection.Len())
	for _, id := range l.selection.IDs() {
		if i := l.indexOf(id); i >= 0 {
			taken = append(taken, l.items[i])
		}
	}
	l.removeSelected()
	return taken
}

// DeleteSelected removes the selected items and returns how many were removed.
func (l *TodoList) DeleteSelected() int {
	before := len(l.items)
	l.removeSelected()
	return before - len(l.items)
}

// Items returns a copy of the list.
func (l *TodoList) Items() []models.TodoItem {
	return slices.Clone(l.items)
}

// Len returns the number of items.
func (l *TodoList) Len() int {
	return len(l.items)
}

// Selected returns the selected positions in selection order.
func (l *TodoList) Selected() []int {
	return positions(l.selection.IDs(), l.indexOf)
}

// IsSelected reports whether the item at index is selected.
func (l *TodoList) IsSelected(index int) bool {
	item, ok := l.at(index)
	return ok && l.selection.Has(item.ID)
}

// Editing returns the edit state and the position of the edited item.
// ok is false when no item is in edit mode.
func (l *TodoList) Editing() (edit Edit, index int, ok bool) {
	if l.edit == nil {
		return Edit{}, -1, false
	}
	return *l.edit, l.indexOf(l.edit.ID), true
}

func (l *TodoList) removeSelected() {
	if l.selection.Len() == 0 {
		return
	}
	l.items = slices.DeleteFunc(l.items, func(it models.TodoItem) bool {
		return l.selection.Has(it.ID)
	})
	l.selection.Clear()
	l.prune()
}

// prune drops selection and edit entries for items no longer in the list.
func (l *TodoList) prune() {
	l.selection.Retain(func(id string) bool { return l.indexOf(id) >= 0 })
	if l.edit != nil && l.indexOf(l.edit.ID) < 0 {
		l.edit = nil
	}
}

func (l *TodoList) at(index int) (models.TodoItem, bool) {
	if index < 0 || index >= len(l.items) {
		return models.TodoItem{}, false
	}
	return l.items[index], true
}

func (l *TodoList) indexOf(id string) int {
	return slices.IndexFunc(l.items, func(it models.TodoItem) bool { return it.ID == id })
}

// CompletedList is the list of completed tasks with its selection.
// Completed tasks are immutable text.
type CompletedList struct {
	tasks     []models.CompletedTask
	selection Selection
}

// NewCompletedList creates a list holding a copy of tasks.
func NewCompletedList(tasks []models.CompletedTask) *CompletedList {
	l := &CompletedList{}
	l.Replace(tasks)
	return l
}

// Replace swaps in a new set of tasks.
func (l *CompletedList) Replace(tasks []models.CompletedTask) {
	l.tasks = slices.Clone(tasks)
	seen := make(map[string]struct{}, len(l.tasks))
	for i := range l.tasks {
		if _, dup := seen[l.tasks[i].ID]; l.tasks[i].ID == "" || dup {
			l.tasks[i].ID = models.NewID()
		}
		seen[l.tasks[i].ID] = struct{}{}
	}
	l.selection.Retain(func(id string) bool { return l.indexOf(id) >= 0 })
}

// Append adds tasks with the given texts to the end of the list, in order.
func (l *CompletedList) Append(texts ...string) {
	for _, text := range texts {
		l.tasks = append(l.tasks, models.NewCompletedTask(text))
	}
}

// ToggleSelect adds or removes the task at index from the selection.
func (l *CompletedList) ToggleSelect(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return ErrStaleIndex
	}
	l.selection.Toggle(l.tasks[index].ID)
	return nil
}

// DeleteSelected removes the selected tasks and returns how many were removed.
func (l *CompletedList) DeleteSelected() int {
	if l.selection.Len() == 0 {
		return 0
	}
	before := len(l.tasks)
	l.tasks = slices.DeleteFunc(l.tasks, func(t models.CompletedTask) bool {
		return l.selection.Has(t.ID)
	})
	l.selection.Clear()
	return before - len(l.tasks)
}

// Tasks returns a copy of the list.
func (l *CompletedList) Tasks() []models.CompletedTask {
	return slices.Clone(l.tasks)
}

// Texts returns the task texts in list order.
func (l *CompletedList) Texts() []string {
	texts := make([]string, len(l.tasks))
	for i, t := range l.tasks {
		texts[i] = t.Text
	}
	return texts
}

// Len returns the number of tasks.
func (l *CompletedList) Len() int {
	return len(l.tasks)
}

// Selected returns the selected positions in selection order.
func (l *CompletedList) Selected() []int {
	return positions(l.selection.IDs(), l.indexOf)
}

// IsSelected reports whether the task at index is selected.
func (l *CompletedList) IsSelected(index int) bool {
	return index >= 0 && index < len(l.tasks) && l.selection.Has(l.tasks[index].ID)
}

func (l *CompletedList) indexOf(id string) int {
	return slices.IndexFunc(l.tasks, func(t models.CompletedTask) bool { return t.ID == id })
}

func positions(ids []string, indexOf func(string) int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if i := indexOf(id); i >= 0 {
			out = append(out, i)
		}
	}
	return out
}
