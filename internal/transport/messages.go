package transport

import (
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type RegisterResponse struct {
	UserID string `json:"userId"`
}

type GetSaltRequest struct {
	Email string `json:"email"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Verifier []byte `json:"verifier"`
}

type LoginResponse struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutResponse struct{}

// Todo is a to-do as seen for one date.
type Todo struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *Timestamp `json:"completedAt,omitempty"`
	Global      bool       `json:"global"`
}

// Day is a stored daily entry. Todos are materialized for the date.
type Day struct {
	ID               string     `json:"id"`
	Date             string     `json:"date"`
	Notes            string     `json:"notes"`
	ImageURLs        []string   `json:"imageUrls"`
	FeaturedImageURL string     `json:"featuredImageUrl"`
	VideoURLs        []string   `json:"videoUrls"`
	Todos            []Todo     `json:"todos"`
	ImportantEvents  string     `json:"importantEvents"`
	UpdatedAt        *Timestamp `json:"updatedAt,omitempty"`
}

type GetDayRequest struct {
	Date string `json:"date"`
}

type GetDayResponse struct {
	Day Day `json:"day"`
}

// SaveDayRequest replaces the entry-owned fields of a date. Todos are
// managed through the task methods and are ignored here.
type SaveDayRequest struct {
	Day Day `json:"day"`
}

type SaveDayResponse struct {
	Day Day `json:"day"`
}

type ListDaysRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DaySummary is the calendar-preview view of a date.
type DaySummary struct {
	Date             string `json:"date"`
	FeaturedImageURL string `json:"featuredImageUrl"`
	HasNotes         bool   `json:"hasNotes"`
	ImageCount       int    `json:"imageCount"`
}

type ListDaysResponse struct {
	Days []DaySummary `json:"days"`
}

type AddImageRequest struct {
	Date       string `json:"date"`
	URL        string `json:"url"`
	StorageKey string `json:"storageKey"`
}

type AddImageResponse struct {
	ID               string `json:"id"`
	FeaturedImageURL string `json:"featuredImageUrl"`
}

type DeleteImageRequest struct {
	Date string `json:"date"`
	URL  string `json:"url"`
}

type DeleteImageResponse struct {
	FeaturedImageURL string `json:"featuredImageUrl"`
}

type AddVideoRequest struct {
	Date string   `json:"date"`
	URL  string   `json:"url"`
	Tags []string `json:"tags"`
}

type AddVideoResponse struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

type DeleteVideoRequest struct {
	Date string `json:"date"`
	URL  string `json:"url"`
}

type DeleteVideoResponse struct{}

type ListTagsRequest struct{}

type ListTagsResponse struct {
	Tags []string `json:"tags"`
}

// ListTasksRequest with an empty Date lists the global templates only.
type ListTasksRequest struct {
	Date string `json:"date"`
}

type ListTasksResponse struct {
	Todos []Todo `json:"todos"`
}

// CreateTaskRequest creates a date-bound task, or a global one when Global
// is set (Date is then ignored).
type CreateTaskRequest struct {
	Date   string `json:"date"`
	Text   string `json:"text"`
	Global bool   `json:"global"`
}

type CreateTaskResponse struct {
	Todo Todo `json:"todo"`
}

// UpdateTaskRequest sets text and completion. For global tasks completion
// applies to Date only.
type UpdateTaskRequest struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type UpdateTaskResponse struct {
	Todo Todo `json:"todo"`
}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct{}

type Quote struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Author    string     `json:"author"`
	ImageURL  string     `json:"imageUrl"`
	DateAdded string     `json:"dateAdded"`
	CreatedAt *Timestamp `json:"createdAt,omitempty"`
}

type ListQuotesRequest struct{}

type ListQuotesResponse struct {
	Quotes []Quote `json:"quotes"`
}

type AddQuoteRequest struct {
	Quote Quote `json:"quote"`
}

type AddQuoteResponse struct {
	Quote Quote `json:"quote"`
}

type DeleteQuoteRequest struct {
	ID string `json:"id"`
}

type DeleteQuoteResponse struct{}

type PresignUploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type PresignUploadResponse struct {
	UploadURL  string `json:"uploadUrl"`
	PublicURL  string `json:"publicUrl"`
	StorageKey string `json:"storageKey"`
}

type MotivateRequest struct {
	Goal    string `json:"goal"`
	Journal string `json:"journal"`
}

type MotivateResponse struct {
	Message string `json:"message"`
}

func stampOf(t *time.Time) *Timestamp {
	if t == nil || t.IsZero() {
		return nil
	}
	return NewTimestamp(*t)
}

func timeOf(ts *Timestamp) *time.Time {
	if ts == nil || ts.Timestamp == nil {
		return nil
	}
	t := ts.AsTime()
	return &t
}

func TodoFrom(t journal.TodoItem) Todo {
	return Todo{
		ID:          t.ID,
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: stampOf(t.CompletedAt),
		Global:      t.Global,
	}
}

func (t Todo) Item() journal.TodoItem {
	return journal.TodoItem{
		ID:          t.ID,
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: timeOf(t.CompletedAt),
		Global:      t.Global,
	}
}

func TodosFrom(items []journal.TodoItem) []Todo {
	out := make([]Todo, 0, len(items))
	for _, t := range items {
		out = append(out, TodoFrom(t))
	}
	return out
}

func Items(todos []Todo) []journal.TodoItem {
	out := make([]journal.TodoItem, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Item())
	}
	return out
}

// DayFrom builds the wire form of an entry.
func DayFrom(e journal.DailyEntry) Day {
	return Day{
		ID:               e.ID,
		Date:             e.Date.String(),
		Notes:            e.Data.Notes,
		ImageURLs:        e.Data.ImageURLs,
		FeaturedImageURL: e.Data.FeaturedImageURL,
		VideoURLs:        e.Data.VideoURLs,
		Todos:            TodosFrom(e.Data.Todos),
		ImportantEvents:  e.Data.ImportantEvents,
		UpdatedAt:        stampOf(&e.UpdatedAt),
	}
}

// Entry converts back to the domain type. Calendar events are never sent.
func (d Day) Entry() journal.DailyEntry {
	e := journal.DailyEntry{
		ID:   d.ID,
		Date: journal.Date(d.Date),
		Data: journal.DailyData{
			Notes:            d.Notes,
			ImageURLs:        d.ImageURLs,
			FeaturedImageURL: d.FeaturedImageURL,
			VideoURLs:        d.VideoURLs,
			Todos:            Items(d.Todos),
			ImportantEvents:  d.ImportantEvents,
		},
	}
	if t := timeOf(d.UpdatedAt); t != nil {
		e.UpdatedAt = *t
	}
	return e
}

func QuoteFrom(q journal.Quote) Quote {
	return Quote{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		ImageURL:  q.ImageURL,
		DateAdded: q.DateAdded.String(),
		CreatedAt: stampOf(&q.CreatedAt),
	}
}

func (q Quote) Domain() journal.Quote {
	out := journal.Quote{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		ImageURL:  q.ImageURL,
		DateAdded: journal.Date(q.DateAdded),
	}
	if t := timeOf(q.CreatedAt); t != nil {
		out.CreatedAt = *t
	}
	return out
}
