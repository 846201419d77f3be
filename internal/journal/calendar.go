package journal

import "time"

// CalendarEvent comes from an external calendar and is never edited here.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
}
