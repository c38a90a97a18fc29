package store

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/todolist/pkg/models"
)

func newTestStore(t *testing.T) (*Store, *MemoryKV, *bytes.Buffer) {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	kv := NewMemoryKV()
	return New(kv, v, logger), kv, &buf
}

func TestStore_RoundTripTodos(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	todos := []models.TodoItem{
		models.NewTodoItem("Buy milk"),
		models.NewTodoItem("Walk dog"),
		models.NewTodoItem("Buy milk"),
	}
	require.NoError(t, s.Save(ctx, models.KeyTodos, todos))

	got := LoadList[models.TodoItem](ctx, s, models.KeyTodos)
	assert.Equal(t, todos, got)
}

func TestStore_RoundTripCompleted(t *testing.T) {
	s, kv, _ := newTestStore(t)
	ctx := context.Background()

	tasks := []models.CompletedTask{
		models.NewCompletedTask("Pay bills"),
		models.NewCompletedTask("Call mom"),
	}
	require.NoError(t, s.Save(ctx, models.KeyCompletedTasks, tasks))

	raw, ok := kv.Value(models.KeyCompletedTasks)
	require.True(t, ok)
	assert.JSONEq(t, `["Pay bills","Call mom"]`, raw)

	got := LoadList[models.CompletedTask](ctx, s, models.KeyCompletedTasks)
	require.Len(t, got, 2)
	assert.Equal(t, "Pay bills", got[0].Text)
	assert.Equal(t, "Call mom", got[1].Text)
	assert.NotEmpty(t, got[0].ID)
}

func TestStore_LoadMissingKey(t *testing.T) {
	s, _, _ := newTestStore(t)

	var dst []models.TodoItem
	assert.False(t, s.Load(context.Background(), models.KeyTodos, &dst))
	assert.Nil(t, dst)
}

func TestStore_LoadLegacyTodosWithoutIDs(t *testing.T) {
	s, kv, _ := newTestStore(t)
	kv.Put(models.KeyTodos, `[{"text":"Buy milk"},{"text":"Walk dog"}]`)

	got := LoadList[models.TodoItem](context.Background(), s, models.KeyTodos)
	require.Len(t, got, 2)
	assert.Equal(t, "Buy milk", got[0].Text)
	assert.Equal(t, "Walk dog", got[1].Text)
}

func TestStore_LoadCorruptJSON(t *testing.T) {
	s, kv, buf := newTestStore(t)
	kv.Put(models.KeyTodos, `[{"text": "unterminated`)

	got := LoadList[models.TodoItem](context.Background(), s, models.KeyTodos)
	assert.Nil(t, got)
	assert.Contains(t, buf.String(), "discarding invalid stored value")
}

func TestStore_LoadSchemaViolation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"todos not array", models.KeyTodos, `{"text":"x"}`},
		{"todo missing text", models.KeyTodos, `[{"id":"a"}]`},
		{"todo text not string", models.KeyTodos, `[{"text":5}]`},
		{"completed not strings", models.KeyCompletedTasks, `[{"text":"x"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, kv, buf := newTestStore(t)
			kv.Put(tt.key, tt.value)

			var dst []any
			assert.False(t, s.Load(context.Background(), tt.key, &dst))
			assert.Contains(t, buf.String(), tt.key)
		})
	}
}

func TestStore_LoadBackendError(t *testing.T) {
	s, kv, buf := newTestStore(t)
	kv.Put(models.KeyTodos, `[]`)
	kv.FailGet(models.KeyTodos, errors.New("disk on fire"))

	got := LoadList[models.TodoItem](context.Background(), s, models.KeyTodos)
	assert.Nil(t, got)
	assert.Contains(t, buf.String(), "error loading from storage")
	assert.Contains(t, buf.String(), "disk on fire")
}

func TestStore_LoadWithoutValidator(t *testing.T) {
	kv := NewMemoryKV()
	kv.Put("other", `[1,2,3]`)
	s := New(kv, nil, log.NewWithOptions(&bytes.Buffer{}, log.Options{}))

	got := LoadList[int](context.Background(), s, "other")
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestStore_SaveNilWritesEmptyArray(t *testing.T) {
	s, kv, _ := newTestStore(t)

	var todos []models.TodoItem
	require.NoError(t, s.Save(context.Background(), models.KeyTodos, todos))

	raw, ok := kv.Value(models.KeyTodos)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestStore_SaveError(t *testing.T) {
	s, kv, _ := newTestStore(t)
	kv.FailSet(models.KeyTodos, errors.New("quota exceeded"))

	err := s.Save(context.Background(), models.KeyTodos, []models.TodoItem{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, kv.Writes())
}

func TestStore_Close(t *testing.T) {
	s, kv, _ := newTestStore(t)
	require.NoError(t, s.Close())
	assert.True(t, kv.Closed())
}

func TestEncode(t *testing.T) {
	data, err := Encode([]string(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = Encode([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, string(data))
}
