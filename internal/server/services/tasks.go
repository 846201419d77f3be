package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/repomanager"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/tasks"
)

// TaskService manages to-dos. Global tasks are templates shown on every
// date; their completion is recorded per date.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m, now: time.Now}
}

// List returns the todos of date with global tasks materialized, or only the
// global templates when date is zero.
func (s *TaskService) List(ctx context.Context, userID string, date journal.Date) ([]journal.TodoItem, error) {
	repo := s.repomanager.Tasks(s.db)
	if date.IsZero() {
		globals, err := repo.ListGlobal(ctx, userID)
		if err != nil {
			return nil, err
		}
		return journal.MaterializeTodos(nil, items(globals), nil), nil
	}
	todos, _, err := materialize(ctx, repo, userID, date)
	return todos, err
}

// Create adds a task at the end of its list. Global tasks ignore date.
func (s *TaskService) Create(ctx context.Context, userID string, date journal.Date, text string, global bool) (journal.TodoItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return journal.TodoItem{}, fmt.Errorf("todo text is empty: %w", common.ErrValidation)
	}
	if global {
		date = ""
	} else if date.IsZero() {
		return journal.TodoItem{}, fmt.Errorf("todo date is required: %w", common.ErrValidation)
	}

	repo := s.repomanager.Tasks(s.db)
	var (
		siblings []journal.Task
		err      error
	)
	if global {
		siblings, err = repo.ListGlobal(ctx, userID)
	} else {
		siblings, err = repo.ListForDate(ctx, userID, date)
	}
	if err != nil {
		return journal.TodoItem{}, err
	}

	t := &journal.Task{UserID: userID, Date: date, Text: text, Position: len(siblings)}
	if err := repo.Create(ctx, t); err != nil {
		return journal.TodoItem{}, fmt.Errorf("create todo: %w", err)
	}
	return t.Item(), nil
}

// Update sets text (when non-empty) and completion. For a global task the
// completion applies to date only, which is then required.
func (s *TaskService) Update(ctx context.Context, userID, id string, date journal.Date, text string, completed bool) (journal.TodoItem, error) {
	var out journal.TodoItem
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)
		t, err := repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if text = strings.TrimSpace(text); text != "" {
			t.Text = text
		}

		if !t.Global() {
			if completed != t.Completed {
				t.Completed = completed
				t.CompletedAt = nil
				if completed {
					now := s.now()
					t.CompletedAt = &now
				}
			}
			if err := repo.Update(ctx, t); err != nil {
				return err
			}
			out = t.Item()
			return nil
		}

		if date.IsZero() {
			return fmt.Errorf("date is required to complete a global todo: %w", common.ErrValidation)
		}
		if err := repo.Update(ctx, t); err != nil {
			return err
		}
		var at *time.Time
		if completed {
			now := s.now()
			at = &now
		}
		if err := repo.SetCompletion(ctx, t.ID, date, at); err != nil {
			return err
		}
		out = journal.TodoItem{ID: t.ID, Text: t.Text, Completed: completed, CompletedAt: at, Global: true}
		return nil
	})
	if err != nil {
		return journal.TodoItem{}, fmt.Errorf("update todo: %w", err)
	}
	return out, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Tasks(s.db).Delete(ctx, userID, id)
}

// materialize returns the todos shown on date and how many of them are bound
// to that date.
func materialize(ctx context.Context, repo tasks.Repository, userID string, date journal.Date) ([]journal.TodoItem, int, error) {
	dated, err := repo.ListForDate(ctx, userID, date)
	if err != nil {
		return nil, 0, err
	}
	globals, err := repo.ListGlobal(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	completions, err := repo.Completions(ctx, userID, date)
	if err != nil {
		return nil, 0, err
	}
	return journal.MaterializeTodos(items(dated), items(globals), completions), len(dated), nil
}

func items(ts []journal.Task) []journal.TodoItem {
	out := make([]journal.TodoItem, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Item())
	}
	return out
}
