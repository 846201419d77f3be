package grpc

import (
	"context"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/auth"
	"github.com/saketh1999/consistency-cal-sub000/internal/transport"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) fail(ctx context.Context, op string, err error) error {
	st := statusFromError(err)
	if status.Code(st) == codes.Internal {
		s.logger.Error(ctx, op+" failed", "error", err)
	}
	return st
}

func (s *GRPCServer) caller(ctx context.Context) (auth.Identity, error) {
	id, ok := identityFrom(ctx)
	if !ok {
		return auth.Identity{}, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return id, nil
}

// callerAndDate resolves the caller and parses a required date.
func (s *GRPCServer) callerAndDate(ctx context.Context, raw string) (auth.Identity, journal.Date, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return id, "", err
	}
	d, err := journal.ParseDate(raw)
	if err != nil {
		return id, "", statusFromError(err)
	}
	return id, d, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *transport.PingRequest) (*transport.PingResponse, error) {
	return &transport.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *transport.RegisterRequest) (*transport.RegisterResponse, error) {
	s.logger.Info(ctx, "Registration request")

	u, err := s.svc.Users.Register(ctx, req.Email, req.Salt, req.Verifier)
	if err != nil {
		return nil, s.fail(ctx, "register", err)
	}

	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return &transport.RegisterResponse{UserID: u.ID}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *transport.GetSaltRequest) (*transport.GetSaltResponse, error) {
	salt, err := s.svc.Users.GetSalt(ctx, req.Email)
	if err != nil {
		return nil, s.fail(ctx, "get salt", err)
	}
	return &transport.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *transport.LoginRequest) (*transport.LoginResponse, error) {
	sess, err := s.svc.Users.Login(ctx, req.Email, req.Verifier)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}
	return &transport.LoginResponse{
		UserID:       sess.UserID,
		Email:        sess.Email,
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *transport.RefreshTokenRequest) (*transport.RefreshTokenResponse, error) {
	pair, err := s.svc.Users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.fail(ctx, "refresh token", err)
	}
	return &transport.RefreshTokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *transport.LogoutRequest) (*transport.LogoutResponse, error) {
	if err := s.svc.Users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, s.fail(ctx, "logout", err)
	}
	return &transport.LogoutResponse{}, nil
}

func (s *GRPCServer) GetDay(ctx context.Context, req *transport.GetDayRequest) (*transport.GetDayResponse, error) {
	id, date, err := s.callerAndDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	e, err := s.svc.Journal.GetDay(ctx, id.UserID, date)
	if err != nil {
		return nil, s.fail(ctx, "get day", err)
	}
	return &transport.GetDayResponse{Day: transport.DayFrom(*e)}, nil
}

func (s *GRPCServer) SaveDay(ctx context.Context, req *transport.SaveDayRequest) (*transport.SaveDayResponse, error) {
	id, date, err := s.callerAndDate(ctx, req.Day.Date)
	if err != nil {
		return nil, err
	}
	e, err := s.svc.Journal.SaveDay(ctx, id.UserID, date, req.Day.Entry().Data)
	if err != nil {
		return nil, s.fail(ctx, "save day", err)
	}
	return &transport.SaveDayResponse{Day: transport.DayFrom(*e)}, nil
}

func (s *GRPCServer) ListDays(ctx context.Context, req *transport.ListDaysRequest) (*transport.ListDaysResponse, error) {
	id, from, err := s.callerAndDate(ctx, req.From)
	if err != nil {
		return nil, err
	}
	to, err := journal.ParseDate(req.To)
	if err != nil {
		return nil, statusFromError(err)
	}

	list, err := s.svc.Journal.ListDays(ctx, id.UserID, from, to)
	if err != nil {
		return nil, s.fail(ctx, "list days", err)
	}
	resp := &transport.ListDaysResponse{Days: make([]transport.DaySummary, 0, len(list))}
	for _, d := range list {
		resp.Days = append(resp.Days, transport.DaySummary{
			Date:             d.Date.String(),
			FeaturedImageURL: d.FeaturedImageURL,
			HasNotes:         d.HasNotes,
			ImageCount:       d.ImageCount,
		})
	}
	return resp, nil
}

func (s *GRPCServer) AddImage(ctx context.Context, req *transport.AddImageRequest) (*transport.AddImageResponse, error) {
	id, date, err := s.callerAndDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	imgID, featured, err := s.svc.Journal.AddImage(ctx, id.UserID, date, req.URL, req.StorageKey)
	if err != nil {
		return nil, s.fail(ctx, "add image", err)
	}
	return &transport.AddImageResponse{ID: imgID, FeaturedImageURL: featured}, nil
}

func (s *GRPCServer) DeleteImage(ctx context.Context, req *transport.DeleteImageRequest) (*transport.DeleteImageResponse, error) {
	id, date, err := s.callerAndDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	featured, err := s.svc.Journal.DeleteImage(ctx, id.UserID, date, req.URL)
	if err != nil {
		return nil, s.fail(ctx, "delete image", err)
	}
	return &transport.DeleteImageResponse{FeaturedImageURL: featured}, nil
}

func (s *GRPCServer) AddVideo(ctx context.Context, req *transport.AddVideoRequest) (*transport.AddVideoResponse, error) {
	id, date, err := s.callerAndDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	v, err := s.svc.Journal.AddVideo(ctx, id.UserID, date, req.URL, req.Tags)
	if err != nil {
		return nil, s.fail(ctx, "add video", err)
	}
	return &transport.AddVideoResponse{ID: v.ID, Tags: journal.TagNames(v.Tags)}, nil
}

func (s *GRPCServer) DeleteVideo(ctx context.Context, req *transport.DeleteVideoRequest) (*transport.DeleteVideoResponse, error) {
	id, date, err := s.callerAndDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Journal.DeleteVideo(ctx, id.UserID, date, req.URL); err != nil {
		return nil, s.fail(ctx, "delete video", err)
	}
	return &transport.DeleteVideoResponse{}, nil
}

func (s *GRPCServer) ListTags(ctx context.Context, req *transport.ListTagsRequest) (*transport.ListTagsResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.svc.Journal.ListTags(ctx, id.UserID)
	if err != nil {
		return nil, s.fail(ctx, "list tags", err)
	}
	return &transport.ListTagsResponse{Tags: tags}, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, req *transport.ListTasksRequest) (*transport.ListTasksResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	var date journal.Date
	if req.Date != "" {
		if date, err = journal.ParseDate(req.Date); err != nil {
			return nil, statusFromError(err)
		}
	}
	todos, err := s.svc.Tasks.List(ctx, id.UserID, date)
	if err != nil {
		return nil, s.fail(ctx, "list tasks", err)
	}
	return &transport.ListTasksResponse{Todos: transport.TodosFrom(todos)}, nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *transport.CreateTaskRequest) (*transport.CreateTaskResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	var date journal.Date
	if !req.Global {
		if date, err = journal.ParseDate(req.Date); err != nil {
			return nil, statusFromError(err)
		}
	}
	item, err := s.svc.Tasks.Create(ctx, id.UserID, date, req.Text, req.Global)
	if err != nil {
		return nil, s.fail(ctx, "create task", err)
	}
	return &transport.CreateTaskResponse{Todo: transport.TodoFrom(item)}, nil
}

func (s *GRPCServer) UpdateTask(ctx context.Context, req *transport.UpdateTaskRequest) (*transport.UpdateTaskResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	var date journal.Date
	if req.Date != "" {
		if date, err = journal.ParseDate(req.Date); err != nil {
			return nil, statusFromError(err)
		}
	}
	item, err := s.svc.Tasks.Update(ctx, id.UserID, req.ID, date, req.Text, req.Completed)
	if err != nil {
		return nil, s.fail(ctx, "update task", err)
	}
	return &transport.UpdateTaskResponse{Todo: transport.TodoFrom(item)}, nil
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *transport.DeleteTaskRequest) (*transport.DeleteTaskResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Tasks.Delete(ctx, id.UserID, req.ID); err != nil {
		return nil, s.fail(ctx, "delete task", err)
	}
	return &transport.DeleteTaskResponse{}, nil
}

func (s *GRPCServer) ListQuotes(ctx context.Context, req *transport.ListQuotesRequest) (*transport.ListQuotesResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Quotes.List(ctx, id.UserID)
	if err != nil {
		return nil, s.fail(ctx, "list quotes", err)
	}
	resp := &transport.ListQuotesResponse{Quotes: make([]transport.Quote, 0, len(list))}
	for _, q := range list {
		resp.Quotes = append(resp.Quotes, transport.QuoteFrom(q))
	}
	return resp, nil
}

func (s *GRPCServer) AddQuote(ctx context.Context, req *transport.AddQuoteRequest) (*transport.AddQuoteResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	q := req.Quote.Domain()
	if q.DateAdded != "" {
		if q.DateAdded, err = journal.ParseDate(q.DateAdded.String()); err != nil {
			return nil, statusFromError(err)
		}
	}
	saved, err := s.svc.Quotes.Add(ctx, id.UserID, q)
	if err != nil {
		return nil, s.fail(ctx, "add quote", err)
	}
	return &transport.AddQuoteResponse{Quote: transport.QuoteFrom(*saved)}, nil
}

func (s *GRPCServer) DeleteQuote(ctx context.Context, req *transport.DeleteQuoteRequest) (*transport.DeleteQuoteResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Quotes.Delete(ctx, id.UserID, req.ID); err != nil {
		return nil, s.fail(ctx, "delete quote", err)
	}
	return &transport.DeleteQuoteResponse{}, nil
}

func (s *GRPCServer) PresignUpload(ctx context.Context, req *transport.PresignUploadRequest) (*transport.PresignUploadResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	up, err := s.svc.Blobs.PresignUpload(ctx, id.UserID, req.FileName, req.ContentType, req.Size)
	if err != nil {
		return nil, s.fail(ctx, "presign upload", err)
	}
	return &transport.PresignUploadResponse{UploadURL: up.UploadURL, PublicURL: up.PublicURL, StorageKey: up.StorageKey}, nil
}

func (s *GRPCServer) Motivate(ctx context.Context, req *transport.MotivateRequest) (*transport.MotivateResponse, error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}
	msg, err := s.svc.Motivation.Motivate(ctx, req.Goal, req.Journal)
	if err != nil {
		if status.Code(statusFromError(err)) == codes.Internal {
			s.logger.Warn(ctx, "motivation call failed", "error", err)
			return nil, status.Error(codes.Unavailable, "motivation service unavailable")
		}
		return nil, statusFromError(err)
	}
	return &transport.MotivateResponse{Message: msg}, nil
}
