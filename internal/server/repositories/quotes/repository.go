// Package quotes stores a user's saved motivational quotes.
package quotes

import (
	"context"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

type Repository interface {
	// List returns quotes newest first.
	List(ctx context.Context, userID string) ([]journal.Quote, error)
	// Create fills ID, CreatedAt and, when empty, DateAdded.
	Create(ctx context.Context, userID string, q *journal.Quote) error
	Delete(ctx context.Context, userID, id string) error
}
