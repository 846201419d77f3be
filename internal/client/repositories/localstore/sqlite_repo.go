package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get local_storage[%s]: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("set local_storage[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete local_storage[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key FROM local_storage WHERE substr(key, 1, ?) = ? ORDER BY key`,
		len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("list local_storage keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan local_storage key: %w", err)
		}
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate local_storage keys: %w", err)
	}
	return keys, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM local_storage`); err != nil {
		return fmt.Errorf("clear local_storage: %w", err)
	}
	return nil
}
