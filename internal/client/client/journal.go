package client

import (
	"context"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/transport"
)

func (s *GRPCClient) GetDay(ctx context.Context, date journal.Date) (journal.DailyEntry, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.GetDay(ctx, &transport.GetDayRequest{Date: date.String()})
	if err != nil {
		return journal.DailyEntry{}, s.mapError(err)
	}
	return resp.Day.Entry(), nil
}

// SaveDay sends the entry-owned fields of data. Todos and calendar events
// are not part of the entry.
func (s *GRPCClient) SaveDay(ctx context.Context, date journal.Date, data journal.DailyData) (journal.DailyEntry, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	day := transport.DayFrom(journal.DailyEntry{Date: date, Data: data})
	day.Todos = nil
	day.UpdatedAt = nil

	resp, err := s.client.SaveDay(ctx, &transport.SaveDayRequest{Day: day})
	if err != nil {
		return journal.DailyEntry{}, s.mapError(err)
	}
	return resp.Day.Entry(), nil
}

func (s *GRPCClient) ListDays(ctx context.Context, from, to journal.Date) ([]transport.DaySummary, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.ListDays(ctx, &transport.ListDaysRequest{From: from.String(), To: to.String()})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Days, nil
}

func (s *GRPCClient) AddImage(ctx context.Context, date journal.Date, url, storageKey string) (string, string, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.AddImage(ctx, &transport.AddImageRequest{Date: date.String(), URL: url, StorageKey: storageKey})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.ID, resp.FeaturedImageURL, nil
}

func (s *GRPCClient) DeleteImage(ctx context.Context, date journal.Date, url string) (string, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.DeleteImage(ctx, &transport.DeleteImageRequest{Date: date.String(), URL: url})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.FeaturedImageURL, nil
}

func (s *GRPCClient) AddVideo(ctx context.Context, date journal.Date, url string, tags []string) (string, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.AddVideo(ctx, &transport.AddVideoRequest{Date: date.String(), URL: url, Tags: tags})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.ID, nil
}

func (s *GRPCClient) DeleteVideo(ctx context.Context, date journal.Date, url string) error {
	ctx, cancel := s.call(ctx)
	defer cancel()

	_, err := s.client.DeleteVideo(ctx, &transport.DeleteVideoRequest{Date: date.String(), URL: url})
	return s.mapError(err)
}

func (s *GRPCClient) ListTags(ctx context.Context) ([]string, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.ListTags(ctx, &transport.ListTagsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tags, nil
}

// ListTasks with a zero date returns the global templates.
func (s *GRPCClient) ListTasks(ctx context.Context, date journal.Date) ([]journal.TodoItem, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.ListTasks(ctx, &transport.ListTasksRequest{Date: date.String()})
	if err != nil {
		return nil, s.mapError(err)
	}
	return transport.Items(resp.Todos), nil
}

func (s *GRPCClient) CreateTask(ctx context.Context, date journal.Date, text string, global bool) (journal.TodoItem, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.CreateTask(ctx, &transport.CreateTaskRequest{Date: date.String(), Text: text, Global: global})
	if err != nil {
		return journal.TodoItem{}, s.mapError(err)
	}
	return resp.Todo.Item(), nil
}

func (s *GRPCClient) UpdateTask(ctx context.Context, id string, date journal.Date, text string, completed bool) (journal.TodoItem, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.UpdateTask(ctx, &transport.UpdateTaskRequest{ID: id, Date: date.String(), Text: text, Completed: completed})
	if err != nil {
		return journal.TodoItem{}, s.mapError(err)
	}
	return resp.Todo.Item(), nil
}

func (s *GRPCClient) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := s.call(ctx)
	defer cancel()

	_, err := s.client.DeleteTask(ctx, &transport.DeleteTaskRequest{ID: id})
	return s.mapError(err)
}

func (s *GRPCClient) ListQuotes(ctx context.Context) ([]journal.Quote, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.ListQuotes(ctx, &transport.ListQuotesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	out := make([]journal.Quote, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		out = append(out, q.Domain())
	}
	return out, nil
}

func (s *GRPCClient) AddQuote(ctx context.Context, q journal.Quote) (journal.Quote, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.AddQuote(ctx, &transport.AddQuoteRequest{Quote: transport.QuoteFrom(q)})
	if err != nil {
		return journal.Quote{}, s.mapError(err)
	}
	return resp.Quote.Domain(), nil
}

func (s *GRPCClient) DeleteQuote(ctx context.Context, id string) error {
	ctx, cancel := s.call(ctx)
	defer cancel()

	_, err := s.client.DeleteQuote(ctx, &transport.DeleteQuoteRequest{ID: id})
	return s.mapError(err)
}

func (s *GRPCClient) PresignUpload(ctx context.Context, fileName, contentType string, size int64) (*Upload, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.PresignUpload(ctx, &transport.PresignUploadRequest{FileName: fileName, ContentType: contentType, Size: size})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &Upload{UploadURL: resp.UploadURL, PublicURL: resp.PublicURL, StorageKey: resp.StorageKey}, nil
}

// Motivate asks the server for a motivational message. The server's AI call
// can take a while, so the client timeout is not applied.
func (s *GRPCClient) Motivate(ctx context.Context, goal, journalText string) (string, error) {
	resp, err := s.client.Motivate(ctx, &transport.MotivateRequest{Goal: goal, Journal: journalText})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Message, nil
}
