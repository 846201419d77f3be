// Package dailies stores one row per (user, date) with the entry-owned
// scalar fields. Images, videos and tasks live in their own tables.
package dailies

import (
	"context"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

// Summary is the calendar-preview view of a stored date.
type Summary struct {
	Date             journal.Date
	FeaturedImageURL string
	HasNotes         bool
	ImageCount       int
}

type Repository interface {
	// Get returns the entry without media or todos, or common.ErrorNotFound.
	Get(ctx context.Context, userID string, date journal.Date) (*journal.DailyEntry, error)
	// Upsert writes notes, important events and the featured image, creating
	// the row on first save. ID and timestamps are filled in.
	Upsert(ctx context.Context, e *journal.DailyEntry) error
	// Ensure returns the entry id for the date, creating an empty row if needed.
	Ensure(ctx context.Context, userID string, date journal.Date) (string, error)
	SetFeatured(ctx context.Context, entryID, url string) error
	ListRange(ctx context.Context, userID string, from, to journal.Date) ([]Summary, error)
}
