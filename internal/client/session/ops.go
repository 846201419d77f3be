package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/mutations"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/persistence"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/transport"
)

// settle finishes a mutation: an unauthorized failure ends the online
// session and a failed delete reloads the date.
func (s *Session) settle(ctx context.Context, r mutations.Result) mutations.Result {
	if r.Err != nil {
		_ = s.checkAuth(ctx, r.Err)
	}
	if r.Refetch {
		if err := s.Reload(ctx); err != nil {
			s.logger.Warn(ctx, "refetch after failed delete", "error", err)
		}
	}
	return r
}

func (s *Session) AddImage(ctx context.Context, url string) mutations.Result {
	return s.settle(ctx, s.muts.AddImage(ctx, url))
}

func (s *Session) AddImageFile(ctx context.Context, path string) mutations.Result {
	return s.settle(ctx, s.muts.AddImageFile(ctx, path))
}

func (s *Session) RemoveImage(ctx context.Context, url string) mutations.Result {
	return s.settle(ctx, s.muts.RemoveImage(ctx, url))
}

func (s *Session) SelectFeatured(ctx context.Context, url string) mutations.Result {
	return s.settle(ctx, s.muts.SelectFeatured(ctx, url))
}

func (s *Session) AddVideo(ctx context.Context, url string, tags []string) mutations.Result {
	return s.settle(ctx, s.muts.AddVideo(ctx, url, tags))
}

func (s *Session) RemoveVideo(ctx context.Context, url string) mutations.Result {
	return s.settle(ctx, s.muts.RemoveVideo(ctx, url))
}

func (s *Session) AddTodo(ctx context.Context, text string, global bool) mutations.Result {
	return s.settle(ctx, s.muts.AddTodo(ctx, text, global))
}

func (s *Session) ToggleTodo(ctx context.Context, id string) mutations.Result {
	return s.settle(ctx, s.muts.ToggleTodo(ctx, id))
}

func (s *Session) RemoveTodo(ctx context.Context, id string) mutations.Result {
	return s.settle(ctx, s.muts.RemoveTodo(ctx, id))
}

// Quotes lists the user's quotes, oldest first.
func (s *Session) Quotes(ctx context.Context) ([]journal.Quote, error) {
	if s.days.Remote() {
		q, err := s.api.ListQuotes(ctx)
		return q, s.checkAuth(ctx, err)
	}
	q, _, err := s.quotes.Load(ctx, persistence.QuotesKey)
	return q, err
}

func (s *Session) AddQuote(ctx context.Context, text, author, imageURL string) (journal.Quote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return journal.Quote{}, fmt.Errorf("empty quote: %w", common.ErrValidation)
	}
	q := journal.Quote{
		Text:      text,
		Author:    strings.TrimSpace(author),
		ImageURL:  strings.TrimSpace(imageURL),
		DateAdded: journal.Today(),
	}

	if s.days.Remote() {
		stored, err := s.api.AddQuote(ctx, q)
		return stored, s.checkAuth(ctx, err)
	}

	list, _, err := s.quotes.Load(ctx, persistence.QuotesKey)
	if err != nil {
		return journal.Quote{}, err
	}
	q.ID = uuid.NewString()
	q.CreatedAt = time.Now().UTC()
	if err := s.quotes.Save(ctx, persistence.QuotesKey, append(list, q)); err != nil {
		return journal.Quote{}, err
	}
	return q, nil
}

func (s *Session) DeleteQuote(ctx context.Context, id string) error {
	if s.days.Remote() {
		err := s.api.DeleteQuote(ctx, id)
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return s.checkAuth(ctx, err)
	}

	list, _, err := s.quotes.Load(ctx, persistence.QuotesKey)
	if err != nil {
		return err
	}
	list = slices.DeleteFunc(list, func(q journal.Quote) bool { return q.ID == id })
	return s.quotes.Save(ctx, persistence.QuotesKey, list)
}

// Motivate asks the server for a message toward goal, informed by the notes
// of the selected date. It needs an online session.
func (s *Session) Motivate(ctx context.Context, goal string) (string, error) {
	if strings.TrimSpace(goal) == "" {
		return "", fmt.Errorf("empty goal: %w", common.ErrValidation)
	}
	if !s.days.Remote() {
		return "", fmt.Errorf("motivation: %w", common.ErrAuthRequired)
	}
	v, err := s.View(ctx)
	if err != nil {
		return "", err
	}
	msg, err := s.api.Motivate(ctx, goal, v.Data.Notes)
	return msg, s.checkAuth(ctx, err)
}

// Days summarizes the dates between from and to that have content.
func (s *Session) Days(ctx context.Context, from, to journal.Date) ([]transport.DaySummary, error) {
	if to < from {
		return nil, fmt.Errorf("range %s..%s: %w", from, to, common.ErrValidation)
	}
	if s.days.Remote() {
		days, err := s.api.ListDays(ctx, from, to)
		return days, s.checkAuth(ctx, err)
	}

	keys, err := s.local.Keys(ctx, persistence.DailyPrefix)
	if err != nil {
		return nil, err
	}
	var out []transport.DaySummary
	for _, k := range keys {
		date, ok := persistence.DateOf(k)
		if !ok || date < from || date > to {
			continue
		}
		d, found, err := s.localDays.Load(ctx, k)
		if err != nil {
			return nil, err
		}
		if !found || d.IsEmpty() {
			continue
		}
		out = append(out, transport.DaySummary{
			Date:             date.String(),
			FeaturedImageURL: d.FeaturedImageURL,
			HasNotes:         d.Notes != "",
			ImageCount:       len(d.ImageURLs),
		})
	}
	return out, nil
}

// Events returns the calendar events of the selected date as last loaded.
func (s *Session) Events(ctx context.Context) ([]journal.CalendarEvent, error) {
	v, err := s.View(ctx)
	return v.Data.CalendarEvents, err
}
