package images

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) List(ctx context.Context, entryID string) ([]journal.Image, error) {
	query := `
		SELECT id, url, storage_key, position, created_at
		FROM images
		WHERE entry_id = $1
		ORDER BY position, created_at
	`
	rows, err := r.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []journal.Image
	for rows.Next() {
		img := journal.Image{EntryID: entryID}
		if err := rows.Scan(&img.ID, &img.URL, &img.StorageKey, &img.Position, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(ctx context.Context, img *journal.Image) error {
	query := `
		INSERT INTO images (entry_id, url, storage_key, position)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (entry_id, url)
		DO UPDATE SET
			position = EXCLUDED.position,
			storage_key = CASE WHEN EXCLUDED.storage_key <> '' THEN EXCLUDED.storage_key ELSE images.storage_key END
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, img.EntryID, img.URL, img.StorageKey, img.Position).
		Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, entryID, url string) (string, error) {
	var key string
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM images WHERE entry_id = $1 AND url = $2 RETURNING storage_key`, entryID, url).Scan(&key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return key, nil
}
