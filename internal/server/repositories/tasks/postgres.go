package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `id, user_id, task_date, text, completed, completed_at, position, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (journal.Task, error) {
	var t journal.Task
	var date, completedAt sql.NullTime
	if err := s.Scan(&t.ID, &t.UserID, &date, &t.Text, &t.Completed, &completedAt, &t.Position, &t.CreatedAt); err != nil {
		return journal.Task{}, err
	}
	if date.Valid {
		t.Date = journal.DateOf(date.Time.UTC())
	}
	if completedAt.Valid {
		at := completedAt.Time
		t.CompletedAt = &at
	}
	return t, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]journal.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []journal.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListForDate(ctx context.Context, userID string, date journal.Date) ([]journal.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks
		WHERE user_id = $1 AND task_date = $2
		ORDER BY position, created_at`, userID, date.String())
}

func (r *PostgresRepository) ListGlobal(ctx context.Context, userID string) ([]journal.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks
		WHERE user_id = $1 AND task_date IS NULL
		ORDER BY position, created_at`, userID)
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*journal.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND id = $2`, userID, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

func nullDate(d journal.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func (r *PostgresRepository) Create(ctx context.Context, t *journal.Task) error {
	query := `
		INSERT INTO tasks (user_id, task_date, text, completed, completed_at, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		t.UserID, nullDate(t.Date), t.Text, t.Completed, t.CompletedAt, t.Position,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *journal.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET text = $3, completed = $4, completed_at = $5
		WHERE user_id = $1 AND id = $2
	`, t.UserID, t.ID, t.Text, t.Completed, t.CompletedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) Completions(ctx context.Context, userID string, date journal.Date) (map[string]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.task_id, c.completed_at
		FROM task_completions c
		JOIN tasks t ON t.id = c.task_id
		WHERE t.user_id = $1 AND c.completion_date = $2
	`, userID, date.String())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, err
		}
		out[id] = at
	}
	return out, rows.Err()
}

func (r *PostgresRepository) SetCompletion(ctx context.Context, taskID string, date journal.Date, at *time.Time) error {
	var err error
	if at == nil {
		_, err = r.db.ExecContext(ctx,
			`DELETE FROM task_completions WHERE task_id = $1 AND completion_date = $2`, taskID, date.String())
	} else {
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO task_completions (task_id, completion_date, completed_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (task_id, completion_date) DO UPDATE SET completed_at = EXCLUDED.completed_at
		`, taskID, date.String(), *at)
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
