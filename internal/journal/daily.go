package journal

import (
	"encoding/json"
	"slices"
	"time"
)

// DailyData is everything tracked for one date.
type DailyData struct {
	Notes            string          `json:"notes"`
	ImageURLs        []string        `json:"imageUrls"`
	FeaturedImageURL string          `json:"featuredImageUrl,omitempty"`
	VideoURLs        []string        `json:"videoUrls"`
	Todos            []TodoItem      `json:"todos"`
	ImportantEvents  string          `json:"importantEvents"`
	CalendarEvents   []CalendarEvent `json:"calendarEvents"`
}

// DailyEntry is the stored record for one (user, date).
type DailyEntry struct {
	ID        string
	UserID    string
	Date      Date
	Data      DailyData
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy.
func (d DailyData) Clone() DailyData {
	out := d
	out.ImageURLs = slices.Clone(d.ImageURLs)
	out.VideoURLs = slices.Clone(d.VideoURLs)
	out.CalendarEvents = slices.Clone(d.CalendarEvents)
	if d.Todos != nil {
		out.Todos = make([]TodoItem, len(d.Todos))
		for i, t := range d.Todos {
			out.Todos[i] = t.Clone()
		}
	}
	return out
}

// IsEmpty reports whether d carries no user content.
func (d DailyData) IsEmpty() bool {
	return d.Notes == "" && d.ImportantEvents == "" && d.FeaturedImageURL == "" &&
		len(d.ImageURLs) == 0 && len(d.VideoURLs) == 0 && len(d.Todos) == 0 &&
		len(d.CalendarEvents) == 0
}

// Normalize drops a featured image that is not among the images.
func Normalize(d DailyData) DailyData {
	if d.FeaturedImageURL != "" && !slices.Contains(d.ImageURLs, d.FeaturedImageURL) {
		d.FeaturedImageURL = ""
	}
	return d
}

type canonicalTodo struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completedAt"`
	Global      bool   `json:"global"`
}

type canonicalEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type canonicalDaily struct {
	Notes            string           `json:"notes"`
	ImageURLs        []string         `json:"imageUrls"`
	FeaturedImageURL string           `json:"featuredImageUrl"`
	VideoURLs        []string         `json:"videoUrls"`
	Todos            []canonicalTodo  `json:"todos"`
	ImportantEvents  string           `json:"importantEvents"`
	CalendarEvents   []canonicalEvent `json:"calendarEvents"`
}

// Canonical serializes d so that equal content yields equal strings: nil and
// empty lists are the same, timestamps are compared in UTC at microsecond
// precision.
func Canonical(d DailyData) string {
	c := canonicalDaily{
		Notes:            d.Notes,
		ImageURLs:        nonNil(d.ImageURLs),
		FeaturedImageURL: d.FeaturedImageURL,
		VideoURLs:        nonNil(d.VideoURLs),
		Todos:            make([]canonicalTodo, 0, len(d.Todos)),
		ImportantEvents:  d.ImportantEvents,
		CalendarEvents:   make([]canonicalEvent, 0, len(d.CalendarEvents)),
	}
	for _, t := range d.Todos {
		c.Todos = append(c.Todos, canonicalTodo{
			ID:          t.ID,
			Text:        t.Text,
			Completed:   t.Completed,
			CompletedAt: stamp(t.CompletedAt),
			Global:      t.Global,
		})
	}
	for _, e := range d.CalendarEvents {
		c.CalendarEvents = append(c.CalendarEvents, canonicalEvent{
			ID:          e.ID,
			Title:       e.Title,
			Start:       stamp(&e.Start),
			End:         stamp(&e.End),
			Description: e.Description,
			Location:    e.Location,
		})
	}

	b, _ := json.Marshal(c)
	return string(b)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func stamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Truncate(time.Microsecond).Format(time.RFC3339Nano)
}
