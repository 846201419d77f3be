package tags

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

func (r *PostgresRepository) Ensure(ctx context.Context, userID, name string) (journal.Tag, error) {
	query := `
		INSERT INTO tags (user_id, name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, name)
		DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	t := journal.Tag{UserID: userID, Name: name}
	if err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&t.ID); err != nil {
		return journal.Tag{}, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Attach(ctx context.Context, videoID, tagID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO video_tags (video_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, videoID, tagID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]journal.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM tags WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []journal.Tag
	for rows.Next() {
		t := journal.Tag{UserID: userID}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ForEntry(ctx context.Context, entryID string) (map[string][]journal.Tag, error) {
	query := `
		SELECT vt.video_id, t.id, t.user_id, t.name
		FROM video_tags vt
		JOIN tags t ON t.id = vt.tag_id
		JOIN videos v ON v.id = vt.video_id
		WHERE v.entry_id = $1
		ORDER BY t.name
	`
	rows, err := r.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]journal.Tag)
	for rows.Next() {
		var videoID string
		var t journal.Tag
		if err := rows.Scan(&videoID, &t.ID, &t.UserID, &t.Name); err != nil {
			return nil, err
		}
		out[videoID] = append(out[videoID], t)
	}
	return out, rows.Err()
}
