// Package calendar reads events from the Google Calendar v3 API. It never
// writes to the calendar.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
)

// Source returns the events overlapping a date.
type Source interface {
	Events(ctx context.Context, date journal.Date) ([]journal.CalendarEvent, error)
}

var _ Source = (*Client)(nil)

// maxPages bounds pagination for a single day.
const maxPages = 10

var errEnoughPages = errors.New("page limit reached")

type Client struct {
	calendarID string
	svc        *gcal.Service
	loc        *time.Location
}

// NewClient returns a client for calendarID. An empty token disables it:
// Events then returns no events and no error. An empty baseURL uses the
// public Google endpoint.
func NewClient(baseURL, calendarID, token string, timeout time.Duration) (*Client, error) {
	c := &Client{calendarID: calendarID, loc: time.Local}
	if token == "" {
		return c, nil
	}

	hc := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	hc.Timeout = timeout
	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if baseURL != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(baseURL, "/")+"/"))
	}

	svc, err := gcal.NewService(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	c.svc = svc
	return c, nil
}

// Enabled reports whether a token is configured.
func (c *Client) Enabled() bool { return c.svc != nil }

func (c *Client) Events(ctx context.Context, date journal.Date) ([]journal.CalendarEvent, error) {
	if !c.Enabled() {
		return nil, nil
	}
	day, err := time.ParseInLocation(common.DateLayout, string(date), c.loc)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, common.ErrValidation)
	}

	call := c.svc.Events.List(c.calendarID).
		TimeMin(day.Format(time.RFC3339)).
		TimeMax(day.AddDate(0, 0, 1).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	var out []journal.CalendarEvent
	pages := 0
	err = call.Pages(ctx, func(p *gcal.Events) error {
		for _, ev := range p.Items {
			if ev.Status == "cancelled" {
				continue
			}
			out = append(out, c.convert(ev))
		}
		if pages++; pages >= maxPages {
			return errEnoughPages
		}
		return nil
	})
	if err != nil && !errors.Is(err, errEnoughPages) {
		return nil, c.mapError(err)
	}
	return out, nil
}

func (c *Client) mapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden:
			return fmt.Errorf("calendar returned %d: %w", gerr.Code, common.ErrorUnauthorized)
		default:
			return fmt.Errorf("calendar returned %d: %s: %w", gerr.Code, gerr.Message, common.ErrRemoteFailure)
		}
	}
	return fmt.Errorf("list events: %w: %w", common.ErrRemoteFailure, err)
}

func (c *Client) convert(ev *gcal.Event) journal.CalendarEvent {
	return journal.CalendarEvent{
		ID:          ev.Id,
		Title:       ev.Summary,
		Start:       c.parseTime(ev.Start),
		End:         c.parseTime(ev.End),
		Description: ev.Description,
		Location:    ev.Location,
	}
}

// parseTime handles both timed events and all-day events, which only carry
// a date.
func (c *Client) parseTime(t *gcal.EventDateTime) time.Time {
	if t == nil {
		return time.Time{}
	}
	if t.DateTime != "" {
		if v, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return v
		}
	}
	if t.Date != "" {
		if v, err := time.ParseInLocation(common.DateLayout, t.Date, c.loc); err == nil {
			return v
		}
	}
	return time.Time{}
}
