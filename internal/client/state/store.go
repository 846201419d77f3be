// Package state holds the journal data of the currently selected date.
//
// A Store is owned by the client's event loop and is not safe for concurrent
// use. Every setter notifies subscribers after the value changes; getters
// return copies.
package state

import (
	"slices"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

// Field names passed to subscribers.
const (
	FieldNotes           = "notes"
	FieldImageURLs       = "imageUrls"
	FieldFeaturedImage   = "featuredImageUrl"
	FieldVideoURLs       = "videoUrls"
	FieldTodos           = "todos"
	FieldImportantEvents = "importantEvents"
	FieldCalendarEvents  = "calendarEvents"
	FieldAll             = "*"
)

type Store struct {
	data      journal.DailyData
	listeners []func(field string)
}

func New() *Store {
	return &Store{}
}

// Subscribe registers fn to run after every setter. The returned function
// removes it.
func (s *Store) Subscribe(fn func(field string)) (unsubscribe func()) {
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

func (s *Store) notify(field string) {
	for _, fn := range s.listeners {
		if fn != nil {
			fn(field)
		}
	}
}

func (s *Store) Notes() string            { return s.data.Notes }
func (s *Store) ImageURLs() []string      { return slices.Clone(s.data.ImageURLs) }
func (s *Store) FeaturedImageURL() string { return s.data.FeaturedImageURL }
func (s *Store) VideoURLs() []string      { return slices.Clone(s.data.VideoURLs) }
func (s *Store) ImportantEvents() string  { return s.data.ImportantEvents }

func (s *Store) Todos() []journal.TodoItem {
	return s.data.Clone().Todos
}

func (s *Store) CalendarEvents() []journal.CalendarEvent {
	return slices.Clone(s.data.CalendarEvents)
}

// Data returns a copy of every tracked field.
func (s *Store) Data() journal.DailyData {
	return s.data.Clone()
}

// Snapshot is the canonical serialization used to detect changes.
func (s *Store) Snapshot() string {
	return journal.Canonical(s.data)
}

func (s *Store) SetNotes(v string) {
	s.data.Notes = v
	s.notify(FieldNotes)
}

func (s *Store) SetImageURLs(v []string) {
	s.data.ImageURLs = slices.Clone(v)
	s.notify(FieldImageURLs)
}

func (s *Store) SetFeaturedImageURL(v string) {
	s.data.FeaturedImageURL = v
	s.notify(FieldFeaturedImage)
}

func (s *Store) SetVideoURLs(v []string) {
	s.data.VideoURLs = slices.Clone(v)
	s.notify(FieldVideoURLs)
}

func (s *Store) SetTodos(v []journal.TodoItem) {
	s.data.Todos = journal.DailyData{Todos: v}.Clone().Todos
	s.notify(FieldTodos)
}

func (s *Store) SetImportantEvents(v string) {
	s.data.ImportantEvents = v
	s.notify(FieldImportantEvents)
}

func (s *Store) SetCalendarEvents(v []journal.CalendarEvent) {
	s.data.CalendarEvents = slices.Clone(v)
	s.notify(FieldCalendarEvents)
}

// SetAll replaces every field at once with a single notification.
func (s *Store) SetAll(d journal.DailyData) {
	s.data = d.Clone()
	s.notify(FieldAll)
}

// Reset clears every field to its empty default.
func (s *Store) Reset() {
	s.SetAll(journal.DailyData{})
}
