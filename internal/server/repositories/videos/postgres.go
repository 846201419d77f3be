package videos

import (
	"context"
	"fmt"

	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, entryID string) ([]journal.Video, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url, created_at
		FROM videos
		WHERE entry_id = $1
		ORDER BY position, created_at
	`, entryID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []journal.Video
	for rows.Next() {
		v := journal.Video{EntryID: entryID}
		if err := rows.Scan(&v.ID, &v.URL, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(ctx context.Context, v *journal.Video, position int) error {
	query := `
		INSERT INTO videos (entry_id, url, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (entry_id, url)
		DO UPDATE SET position = EXCLUDED.position
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, v.EntryID, v.URL, position).Scan(&v.ID, &v.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, entryID, url string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE entry_id = $1 AND url = $2`, entryID, url)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}
