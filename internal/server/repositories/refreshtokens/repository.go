// Package refreshtokens stores the opaque refresh tokens issued at login.
// Tokens are single use: refreshing deletes the old one and issues a new one.
package refreshtokens

import (
	"context"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/server/models"
)

type Repository interface {
	// Create stores token for userID, expiring after validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns the token with its owner's email, or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes token. Missing tokens are not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired purges tokens that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
