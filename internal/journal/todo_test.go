package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoItem_Toggle(t *testing.T) {
	now := time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC)
	item := TodoItem{ID: "t1", Text: "stretch"}

	done := item.Toggle(now)
	require.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, now, *done.CompletedAt)

	open := done.Toggle(now.Add(time.Hour))
	assert.False(t, open.Completed)
	assert.Nil(t, open.CompletedAt)

	assert.False(t, item.Completed, "Toggle returns a copy")
}

func TestMaterializeTodos(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	dated := []TodoItem{{ID: "d1", Text: "stretch"}}
	globals := []TodoItem{
		{ID: "g1", Text: "drink water", Global: true},
		{ID: "g2", Text: "read", Global: true, Completed: true},
	}

	got := MaterializeTodos(dated, globals, map[string]time.Time{"g1": at})

	require.Len(t, got, 3)
	assert.Equal(t, "d1", got[0].ID)
	assert.True(t, got[1].Completed)
	assert.Equal(t, at, *got[1].CompletedAt)
	assert.False(t, got[2].Completed, "completion of a template comes from the day only")
	assert.Nil(t, got[2].CompletedAt)
	assert.True(t, got[2].Global)
}

func TestSplitTodos(t *testing.T) {
	dated, globals := SplitTodos([]TodoItem{{ID: "a"}, {ID: "b", Global: true}, {ID: "c"}})
	assert.Len(t, dated, 2)
	assert.Len(t, globals, 1)
	assert.Equal(t, "b", globals[0].ID)
}

func TestTask_Item(t *testing.T) {
	assert.True(t, Task{ID: "x"}.Item().Global)
	assert.False(t, Task{ID: "x", Date: "2024-05-01"}.Item().Global)
}
