package services

import (
	"context"
	"testing"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_DatedToggle(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()
	rm := newFakeRepoManager()
	s := NewTaskService(db, rm)
	fixed := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	item, err := s.Create(ctx, "u1", day, "stretch", false)
	require.NoError(t, err)
	assert.False(t, item.Global)
	assert.Nil(t, item.CompletedAt)

	done, err := s.Update(ctx, "u1", item.ID, day, "", true)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, fixed, *done.CompletedAt)

	open, err := s.Update(ctx, "u1", item.ID, day, "", false)
	require.NoError(t, err)
	assert.False(t, open.Completed)
	assert.Nil(t, open.CompletedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_GlobalCompletionIsPerDate(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	rm := newFakeRepoManager()
	s := NewTaskService(db, rm)
	ctx := context.Background()

	g, err := s.Create(ctx, "u1", day, "water", true)
	require.NoError(t, err)
	assert.True(t, g.Global)

	_, err = s.Update(ctx, "u1", g.ID, day, "", true)
	require.NoError(t, err)

	today, err := s.List(ctx, "u1", day)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.True(t, today[0].Completed)
	assert.NotNil(t, today[0].CompletedAt)

	tomorrow, err := s.List(ctx, "u1", day.AddDays(1))
	require.NoError(t, err)
	require.Len(t, tomorrow, 1)
	assert.False(t, tomorrow[0].Completed)

	templates, err := s.List(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.False(t, templates[0].Completed)
}

func TestTaskService_GlobalUpdateNeedsDate(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	rm := newFakeRepoManager()
	rm.tasks.rows = []journal.Task{{ID: "g1", UserID: "u1", Text: "water"}}
	s := NewTaskService(db, rm)

	_, err := s.Update(context.Background(), "u1", "g1", "", "", true)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestTaskService_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := NewTaskService(db, newFakeRepoManager())
	ctx := context.Background()

	_, err := s.Create(ctx, "u1", day, "  ", false)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Create(ctx, "u1", "", "x", false)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestTaskService_UpdateAndDeleteUnknown(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	s := NewTaskService(db, newFakeRepoManager())
	ctx := context.Background()

	_, err := s.Update(ctx, "u1", "nope", day, "", true)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "u1", "nope"), common.ErrorNotFound)
}
