package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `
		SELECT rt.user_id, u.email, rt.expires_at
		FROM refresh_tokens rt
		JOIN users u ON u.id = rt.user_id
		WHERE rt.token = $1
	`
	rt := &models.RefreshToken{Token: token}
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&rt.UserID, &rt.Email, &rt.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rt, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM refresh_tokens
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}
