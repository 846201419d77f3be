package transport

import (
	"testing"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_WireFormat(t *testing.T) {
	done := time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC)
	data, err := jsonCodec{}.Marshal(TodoFrom(journal.TodoItem{ID: "t", Text: "stretch", Completed: true, CompletedAt: &done}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"completedAt":"2024-05-01T07:30:00Z"`)

	var back Todo
	require.NoError(t, jsonCodec{}.Unmarshal(data, &back))
	require.NotNil(t, back.Item().CompletedAt)
	assert.True(t, back.Item().CompletedAt.Equal(done))
}

func TestTimestamp_Absent(t *testing.T) {
	data, err := jsonCodec{}.Marshal(TodoFrom(journal.TodoItem{ID: "t"}))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "completedAt")

	var back Todo
	require.NoError(t, jsonCodec{}.Unmarshal([]byte(`{"id":"t","completedAt":null}`), &back))
	assert.Nil(t, back.Item().CompletedAt)
}

func TestTimestamp_Rejects(t *testing.T) {
	var back Day
	err := jsonCodec{}.Unmarshal([]byte(`{"updatedAt":{"seconds":1}}`), &back)
	require.Error(t, err)

	err = jsonCodec{}.Unmarshal([]byte(`{"updatedAt":"yesterday"}`), &back)
	require.Error(t, err)
}
