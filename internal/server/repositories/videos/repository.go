// Package videos stores the ordered video list of a daily entry.
package videos

import (
	"context"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

type Repository interface {
	// List returns videos in display order, without tags.
	List(ctx context.Context, entryID string) ([]journal.Video, error)
	// Add inserts v at position, or moves an existing (entry, url) pair.
	Add(ctx context.Context, v *journal.Video, position int) error
	// Delete removes the video, or returns common.ErrorNotFound.
	Delete(ctx context.Context, entryID, url string) error
}
