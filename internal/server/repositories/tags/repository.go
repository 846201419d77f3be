// Package tags stores user-scoped tags and their links to videos.
package tags

import (
	"context"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

type Repository interface {
	// Ensure returns the user's tag called name, creating it if needed.
	Ensure(ctx context.Context, userID, name string) (journal.Tag, error)
	Attach(ctx context.Context, videoID, tagID string) error
	ListByUser(ctx context.Context, userID string) ([]journal.Tag, error)
	// ForEntry maps video id to its tags for every video of the entry.
	ForEntry(ctx context.Context, entryID string) (map[string][]journal.Tag, error)
}
