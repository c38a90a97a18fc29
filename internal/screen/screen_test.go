package screen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/todolist/internal/persist"
	"github.com/ShayCichocki/todolist/internal/store"
	"github.com/ShayCichocki/todolist/internal/todo"
	"github.com/ShayCichocki/todolist/pkg/models"
)

type harness struct {
	screen *Screen
	kv     *store.MemoryKV
	writer *persist.Writer
}

func newHarness(t *testing.T, seed map[string]string) *harness {
	t.Helper()
	kv := store.NewMemoryKV()
	for k, v := range seed {
		kv.Put(k, v)
	}
	v, err := store.NewValidator()
	require.NoError(t, err)
	st := store.New(kv, v, nil)
	w := persist.NewWriter(st, 0, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = w.Close(ctx)
	})
	return &harness{screen: New(st, w, nil), kv: kv, writer: w}
}

func (h *harness) load(t *testing.T) {
	t.Helper()
	require.NoError(t, h.screen.Load(context.Background()))
}

func (h *harness) settle(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.writer.Flush(ctx))
}

func (h *harness) add(t *testing.T, texts ...string) {
	t.Helper()
	for _, text := range texts {
		_, err := h.screen.Add(text)
		require.NoError(t, err)
	}
}

func jsonUnmarshal(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}

func todoTexts(v View) []string {
	out := make([]string, 0, len(v.Todos))
	for _, r := range v.Todos {
		out = append(out, r.Text)
	}
	return out
}

func completedTexts(v View) []string {
	out := make([]string, 0, len(v.Completed))
	for _, r := range v.Completed {
		out = append(out, r.Text)
	}
	return out
}

func TestScreen_Lifecycle(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, todo.Uninitialized, h.screen.Lifecycle())
	assert.False(t, h.screen.View().Ready())

	_, err := h.screen.Add("early")
	assert.ErrorIs(t, err, todo.ErrNotReady)
	assert.ErrorIs(t, h.screen.ToggleTodo(0), todo.ErrNotReady)
	_, err = h.screen.PromoteSelected()
	assert.ErrorIs(t, err, todo.ErrNotReady)

	h.load(t)
	assert.Equal(t, todo.Ready, h.screen.Lifecycle())
	assert.True(t, h.screen.View().Ready())

	h.settle(t)
	assert.Empty(t, h.kv.Writes(), "loading must not write")
}

func TestScreen_LoadHydratesBothLists(t *testing.T) {
	h := newHarness(t, map[string]string{
		models.KeyTodos:          `[{"text":"Buy milk"},{"text":"Walk dog"}]`,
		models.KeyCompletedTasks: `["Pay bills"]`,
	})
	h.load(t)

	v := h.screen.View()
	assert.Equal(t, []string{"Buy milk", "Walk dog"}, todoTexts(v))
	assert.Equal(t, []string{"Pay bills"}, completedTexts(v))
	assert.NotEmpty(t, v.Todos[0].ID)
}

func TestScreen_LoadIsIdempotent(t *testing.T) {
	h := newHarness(t, map[string]string{models.KeyTodos: `[{"text":"A"}]`})
	h.load(t)
	h.add(t, "B")

	h.load(t)
	assert.Equal(t, []string{"A", "B"}, todoTexts(h.screen.View()))
}

func TestScreen_LoadFailureStartsEmpty(t *testing.T) {
	h := newHarness(t, map[string]string{
		models.KeyTodos:          `not json`,
		models.KeyCompletedTasks: `["kept"]`,
	})
	h.kv.FailGet(models.KeyCompletedTasks, errors.New("unavailable"))
	h.load(t)

	v := h.screen.View()
	assert.Equal(t, todo.Ready, v.Lifecycle)
	assert.Empty(t, v.Todos)
	assert.Empty(t, v.Completed)
}

func TestScreen_LoadCancelled(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, h.screen.Load(ctx), context.Canceled)
	assert.Equal(t, todo.Uninitialized, h.screen.Lifecycle())
}

func TestScreen_AddPersists(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)

	item, err := h.screen.Add("Buy milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", item.Text)
	h.settle(t)

	got, ok := h.kv.Value(models.KeyTodos)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"`+item.ID+`","text":"Buy milk"}]`, got)
}

func TestScreen_AddEmptyIsRejected(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := h.screen.Add(text)
		assert.ErrorIs(t, err, todo.ErrEmptyText)
	}
	h.settle(t)
	assert.Empty(t, h.screen.View().Todos)
	assert.Empty(t, h.kv.Writes())
}

func TestScreen_PromoteSelectedUsesSelectionOrder(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)
	h.add(t, "A", "B", "C")

	require.NoError(t, h.screen.ToggleTodo(2))
	require.NoError(t, h.screen.ToggleTodo(0))
	n, err := h.screen.PromoteSelected()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	v := h.screen.View()
	assert.Equal(t, []string{"B"}, todoTexts(v))
	assert.Equal(t, []string{"C", "A"}, completedTexts(v))
	for _, r := range v.Todos {
		assert.False(t, r.Selected)
	}

	h.settle(t)
	todos, _ := h.kv.Value(models.KeyTodos)
	var stored []models.TodoItem
	require.NoError(t, jsonUnmarshal(todos, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "B", stored[0].Text)
	completed, _ := h.kv.Value(models.KeyCompletedTasks)
	assert.JSONEq(t, `["C","A"]`, completed)
}

func TestScreen_PromoteInListOrder(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)
	h.add(t, "A", "B", "C")

	require.NoError(t, h.screen.ToggleTodo(0))
	require.NoError(t, h.screen.ToggleTodo(2))
	_, err := h.screen.PromoteSelected()
	require.NoError(t, err)

	v := h.screen.View()
	assert.Equal(t, []string{"B"}, todoTexts(v))
	assert.Equal(t, []string{"A", "C"}, completedTexts(v))
}

func TestScreen_DeleteSelectedTodos(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)
	h.add(t, "A", "B", "C")

	require.NoError(t, h.screen.ToggleTodo(1))
	n, err := h.screen.DeleteSelectedTodos()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"A", "C"}, todoTexts(h.screen.View()))

	h.settle(t)
	var stored []models.TodoItem
	raw, _ := h.kv.Value(models.KeyTodos)
	require.NoError(t, jsonUnmarshal(raw, &stored))
	require.Len(t, stored, 2)
	assert.Equal(t, "A", stored[0].Text)
	assert.Equal(t, "C", stored[1].Text)
}

func TestScreen_StoredRepeatedIDDeletesOnlySelected(t *testing.T) {
	h := newHarness(t, map[string]string{
		models.KeyTodos: `[{"text":"A","id":"x"},{"text":"B","id":"x"},{"text":"C"}]`,
	})
	h.load(t)

	require.NoError(t, h.screen.ToggleTodo(1))
	view := h.screen.View()
	assert.False(t, view.Todos[0].Selected)
	assert.True(t, view.Todos[1].Selected)

	n, err := h.screen.DeleteSelectedTodos()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	h.settle(t)
	var stored []models.TodoItem
	raw, _ := h.kv.Value(models.KeyTodos)
	require.NoError(t, jsonUnmarshal(raw, &stored))
	require.Len(t, stored, 2)
	assert.Equal(t, "A", stored[0].Text)
	assert.Equal(t, "C", stored[1].Text)
	assert.NotEqual(t, stored[0].ID, stored[1].ID)
}

func TestScreen_DeleteSelectedBothLists(t *testing.T) {
	h := newHarness(t, map[string]string{models.KeyCompletedTasks: `["X","Y","Z"]`})
	h.load(t)
	h.add(t, "A", "B")

	require.NoError(t, h.screen.ToggleTodo(0))
	require.NoError(t, h.screen.ToggleCompleted(1))
	todos, completed, err := h.screen.DeleteSelected()
	require.NoError(t, err)
	assert.Equal(t, 1, todos)
	assert.Equal(t, 1, completed)

	v := h.screen.View()
	assert.Equal(t, []string{"B"}, todoTexts(v))
	assert.Equal(t, []string{"X", "Z"}, completedTexts(v))

	h.settle(t)
	raw, _ := h.kv.Value(models.KeyCompletedTasks)
	assert.JSONEq(t, `["X","Z"]`, raw)
}

func TestScreen_DeleteSelectedCompleted(t *testing.T) {
	h := newHarness(t, map[string]string{models.KeyCompletedTasks: `["X","Y"]`})
	h.load(t)

	require.NoError(t, h.screen.ToggleCompleted(0))
	n, err := h.screen.DeleteSelectedCompleted()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	h.settle(t)
	raw, _ := h.kv.Value(models.KeyCompletedTasks)
	assert.JSONEq(t, `["Y"]`, raw)
}

func TestScreen_EditCommit(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)
	h.add(t, "A", "B", "C")

	require.NoError(t, h.screen.ToggleTodo(0))
	require.NoError(t, h.screen.BeginEdit(1))

	v := h.screen.View()
	assert.Equal(t, 1, v.EditIndex())
	assert.Equal(t, "B", v.Todos[1].Draft)

	require.NoError(t, h.screen.SetDraft("Z"))
	require.NoError(t, h.screen.CommitDraft())

	v = h.screen.View()
	assert.Equal(t, []string{"A", "Z", "C"}, todoTexts(v))
	assert.Equal(t, -1, v.EditIndex())
	assert.True(t, v.Todos[0].Selected)
	assert.False(t, v.Todos[1].Selected)

	h.settle(t)
	var stored []models.TodoItem
	raw, _ := h.kv.Value(models.KeyTodos)
	require.NoError(t, jsonUnmarshal(raw, &stored))
	assert.Equal(t, "Z", stored[1].Text)
}

func TestScreen_EditCommitWithText(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)
	h.add(t, "A")

	require.NoError(t, h.screen.BeginEdit(0))
	require.NoError(t, h.screen.CommitEdit("A2"))
	assert.Equal(t, []string{"A2"}, todoTexts(h.screen.View()))

	assert.ErrorIs(t, h.screen.CommitEdit("again"), todo.ErrNotEditing)
	assert.ErrorIs(t, h.screen.CommitDraft(), todo.ErrNotEditing)
}

func TestScreen_CancelEditLeavesTextAndStorage(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)
	h.add(t, "A")
	h.settle(t)
	writes := len(h.kv.Writes())

	require.NoError(t, h.screen.BeginEdit(0))
	require.NoError(t, h.screen.SetDraft("changed"))
	require.NoError(t, h.screen.CancelEdit())

	v := h.screen.View()
	assert.Equal(t, []string{"A"}, todoTexts(v))
	assert.Equal(t, -1, v.EditIndex())

	h.settle(t)
	assert.Len(t, h.kv.Writes(), writes)
}

func TestScreen_StaleIndex(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)
	h.add(t, "A")

	assert.ErrorIs(t, h.screen.ToggleTodo(3), todo.ErrStaleIndex)
	assert.ErrorIs(t, h.screen.ToggleCompleted(0), todo.ErrStaleIndex)
	assert.ErrorIs(t, h.screen.BeginEdit(-1), todo.ErrStaleIndex)
}

func TestScreen_PersistedStateMatchesLastMutation(t *testing.T) {
	h := newHarness(t, nil)
	h.kv.DelaySet(models.KeyTodos, 10*time.Millisecond)
	h.load(t)

	h.add(t, "A", "B", "C", "D")
	require.NoError(t, h.screen.ToggleTodo(1))
	require.NoError(t, h.screen.ToggleTodo(3))
	_, err := h.screen.PromoteSelected()
	require.NoError(t, err)
	h.settle(t)

	var stored []models.TodoItem
	raw, _ := h.kv.Value(models.KeyTodos)
	require.NoError(t, jsonUnmarshal(raw, &stored))
	assert.Len(t, stored, 2)
	assert.Equal(t, "A", stored[0].Text)
	assert.Equal(t, "C", stored[1].Text)

	completed, _ := h.kv.Value(models.KeyCompletedTasks)
	assert.JSONEq(t, `["B","D"]`, completed)
}

func TestScreen_ReloadRoundTrip(t *testing.T) {
	h := newHarness(t, nil)
	h.load(t)
	h.add(t, "A", "B")
	require.NoError(t, h.screen.ToggleTodo(0))
	_, err := h.screen.PromoteSelected()
	require.NoError(t, err)
	h.settle(t)

	before := h.screen.View()

	v, err := store.NewValidator()
	require.NoError(t, err)
	reloaded := New(store.New(h.kv, v, nil), h.writer, nil)
	require.NoError(t, reloaded.Load(context.Background()))
	after := reloaded.View()

	assert.Equal(t, todoTexts(before), todoTexts(after))
	assert.Equal(t, before.Todos[0].ID, after.Todos[0].ID)
	assert.Equal(t, completedTexts(before), completedTexts(after))
}

func TestScreen_EnqueueFailureIsLogged(t *testing.T) {
	kv := store.NewMemoryKV()
	st := store.New(kv, nil, nil)
	w := persist.NewWriter(st, 0, nil)
	require.NoError(t, w.Close(context.Background()))

	s := New(st, w, nil)
	require.NoError(t, s.Load(context.Background()))

	_, err := s.Add("still works")
	require.NoError(t, err)
	assert.Equal(t, []string{"still works"}, todoTexts(s.View()))
}
