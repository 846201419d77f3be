package quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]journal.Quote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, author, image_url, date_added, created_at
		FROM quotes
		WHERE user_id = $1
		ORDER BY date_added DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []journal.Quote
	for rows.Next() {
		var q journal.Quote
		var added time.Time
		if err := rows.Scan(&q.ID, &q.Text, &q.Author, &q.ImageURL, &added, &q.CreatedAt); err != nil {
			return nil, err
		}
		q.DateAdded = journal.DateOf(added.UTC())
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, q *journal.Quote) error {
	var added any
	if !q.DateAdded.IsZero() {
		added = q.DateAdded.String()
	}

	var day time.Time
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO quotes (user_id, text, author, image_url, date_added)
		VALUES ($1, $2, $3, $4, COALESCE($5::date, CURRENT_DATE))
		RETURNING id, date_added, created_at
	`, userID, q.Text, q.Author, q.ImageURL, added).Scan(&q.ID, &day, &q.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	q.DateAdded = journal.DateOf(day.UTC())
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}
