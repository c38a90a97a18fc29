package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Storage keys for the two persisted lists.
const (
	// KeyTodos holds the pending list as a JSON array of {"text": ...} objects.
	KeyTodos = "todos"
	// KeyCompletedTasks holds the completed list as a JSON array of strings.
	KeyCompletedTasks = "completedTasks"
)

// TodoItem is a pending entry in the todo list.
type TodoItem struct {
	// ID is a stable identifier assigned when the item is created.
	ID string `json:"id,omitempty"`
	// Text is the item text exactly as the user typed it.
	Text string `json:"text"`
}

// NewTodoItem creates an item with a fresh ID.
func NewTodoItem(text string) TodoItem {
	return TodoItem{ID: NewID(), Text: text}
}

// CompletedTask is an entry in the completed list.
// Only the text is persisted; the ID lives in memory and is reassigned on load.
type CompletedTask struct {
	ID   string
	Text string
}

// NewCompletedTask creates a completed task with a fresh ID.
func NewCompletedTask(text string) CompletedTask {
	return CompletedTask{ID: NewID(), Text: text}
}

// MarshalJSON encodes the task as a bare JSON string.
func (c CompletedTask) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Text)
}

// UnmarshalJSON decodes a bare JSON string and assigns a fresh ID.
func (c *CompletedTask) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	c.Text = text
	c.ID = NewID()
	return nil
}

// EnsureIDs assigns IDs to items loaded without one and replaces any ID already
// used by an earlier item, so every ID in the result is unique.
func EnsureIDs(items []TodoItem) []TodoItem {
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		if _, dup := seen[items[i].ID]; items[i].ID == "" || dup {
			items[i].ID = NewID()
		}
		seen[items[i].ID] = struct{}{}
	}
	return items
}

// NewID returns a new random item identifier.
func NewID() string {
	return uuid.New().String()
}
