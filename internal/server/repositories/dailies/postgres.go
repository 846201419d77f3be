package dailies

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

func (r *PostgresRepository) Get(ctx context.Context, userID string, date journal.Date) (*journal.DailyEntry, error) {
	query := `
		SELECT id, notes, important_events, featured_image_url, created_at, updated_at
		FROM daily_entries
		WHERE user_id = $1 AND entry_date = $2
	`
	e := &journal.DailyEntry{UserID: userID, Date: date}
	err := r.db.QueryRowContext(ctx, query, userID, date.String()).Scan(
		&e.ID, &e.Data.Notes, &e.Data.ImportantEvents, &e.Data.FeaturedImageURL, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, e *journal.DailyEntry) error {
	query := `
		INSERT INTO daily_entries (user_id, entry_date, notes, important_events, featured_image_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, entry_date)
		DO UPDATE SET
			notes = EXCLUDED.notes,
			important_events = EXCLUDED.important_events,
			featured_image_url = EXCLUDED.featured_image_url,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		e.UserID, e.Date.String(), e.Data.Notes, e.Data.ImportantEvents, e.Data.FeaturedImageURL,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Ensure(ctx context.Context, userID string, date journal.Date) (string, error) {
	query := `
		INSERT INTO daily_entries (user_id, entry_date)
		VALUES ($1, $2)
		ON CONFLICT (user_id, entry_date)
		DO UPDATE SET updated_at = now()
		RETURNING id
	`
	var id string
	if err := r.db.QueryRowContext(ctx, query, userID, date.String()).Scan(&id); err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) SetFeatured(ctx context.Context, entryID, url string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE daily_entries SET featured_image_url = $2, updated_at = now() WHERE id = $1`, entryID, url)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) ListRange(ctx context.Context, userID string, from, to journal.Date) ([]Summary, error) {
	query := `
		SELECT d.entry_date, d.featured_image_url, d.notes <> '', COUNT(i.id)
		FROM daily_entries d
		LEFT JOIN images i ON i.entry_id = d.id
		WHERE d.user_id = $1 AND d.entry_date BETWEEN $2 AND $3
		GROUP BY d.id
		ORDER BY d.entry_date
	`
	rows, err := r.db.QueryContext(ctx, query, userID, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var day time.Time
		if err := rows.Scan(&day, &s.FeaturedImageURL, &s.HasNotes, &s.ImageCount); err != nil {
			return nil, err
		}
		s.Date = journal.DateOf(day.UTC())
		out = append(out, s)
	}
	return out, rows.Err()
}
