package journal

import "time"

type Image struct {
	ID         string
	EntryID    string
	URL        string
	StorageKey string
	Position   int
	CreatedAt  time.Time
}

type Video struct {
	ID        string
	EntryID   string
	URL       string
	Tags      []Tag
	CreatedAt time.Time
}

// Tag belongs to exactly one user; names are unique per user.
type Tag struct {
	ID     string
	UserID string
	Name   string
}

type VideoTag struct {
	VideoID string
	TagID   string
}

func TagNames(tags []Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Name)
	}
	return out
}
