// Package images stores the ordered image list of a daily entry.
package images

import (
	"context"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

type Repository interface {
	// List returns images in display order.
	List(ctx context.Context, entryID string) ([]journal.Image, error)
	// Add inserts img, or updates the position of an existing (entry, url)
	// pair. img.ID is filled in either way.
	Add(ctx context.Context, img *journal.Image) error
	// Delete removes the image and returns its storage key (may be empty),
	// or common.ErrorNotFound.
	Delete(ctx context.Context, entryID, url string) (string, error)
}
