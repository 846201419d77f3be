// Package tasks stores to-do items. A task with no date is global: it is
// shown on every date and its completion is tracked per date in
// task_completions instead of on the task row.
package tasks

import (
	"context"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

type Repository interface {
	ListForDate(ctx context.Context, userID string, date journal.Date) ([]journal.Task, error)
	ListGlobal(ctx context.Context, userID string) ([]journal.Task, error)
	Get(ctx context.Context, userID, id string) (*journal.Task, error)
	// Create fills ID and CreatedAt.
	Create(ctx context.Context, t *journal.Task) error
	// Update writes text and completion of a task owned by t.UserID.
	Update(ctx context.Context, t *journal.Task) error
	Delete(ctx context.Context, userID, id string) error
	// Completions maps global task id to its completion time on date.
	Completions(ctx context.Context, userID string, date journal.Date) (map[string]time.Time, error)
	// SetCompletion marks a global task done on date, or open when at is nil.
	SetCompletion(ctx context.Context, taskID string, date journal.Date, at *time.Time) error
}
