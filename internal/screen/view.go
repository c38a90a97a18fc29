package screen

import "github.com/ShayCichocki/todolist/internal/todo"

// Row is one rendered list entry.
type Row struct {
	ID       string
	Text     string
	Selected bool
	// Editing is set on the todo row in edit mode; Draft then holds its pending text.
	Editing bool
	Draft   string
}

// View is a point-in-time copy of the screen for rendering.
type View struct {
	Lifecycle todo.Lifecycle
	Todos     []Row
	Completed []Row
}

// Ready reports whether the lists have been loaded.
func (v View) Ready() bool {
	return v.Lifecycle == todo.Ready
}

// EditIndex returns the position of the todo in edit mode, or -1.
func (v View) EditIndex() int {
	for i, r := range v.Todos {
		if r.Editing {
			return i
		}
	}
	return -1
}

// View returns a copy of the current state.
func (s *Screen) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{Lifecycle: s.lifecycle}
	edit, editIndex, editing := s.todos.Editing()
	for i, item := range s.todos.Items() {
		row := Row{ID: item.ID, Text: item.Text, Selected: s.todos.IsSelected(i)}
		if editing && i == editIndex {
			row.Editing = true
			row.Draft = edit.Draft
		}
		v.Todos = append(v.Todos, row)
	}
	for i, task := range s.completed.Tasks() {
		v.Completed = append(v.Completed, Row{ID: task.ID, Text: task.Text, Selected: s.completed.IsSelected(i)})
	}
	return v
}
