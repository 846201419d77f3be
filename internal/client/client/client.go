package client

import (
	"context"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/transport"
)

// TokenPair is the session credential issued by the server.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Upload is a presigned upload target.
type Upload struct {
	UploadURL  string
	PublicURL  string
	StorageKey string
}

// Client is the remote journal API as the rest of the client sees it.
// Errors are mapped to sentinels: common.ErrorNotFound, common.ErrValidation,
// ErrUnauthorized, ErrUnavailable.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, email string, salt, verifier []byte) error
	GetSalt(ctx context.Context, email string) ([]byte, error)
	Login(ctx context.Context, email string, verifier []byte) (userID string, err error)
	Logout(ctx context.Context) error
	SetTokens(p TokenPair)
	Tokens() TokenPair
	OnTokens(fn func(TokenPair))

	GetDay(ctx context.Context, date journal.Date) (journal.DailyEntry, error)
	SaveDay(ctx context.Context, date journal.Date, data journal.DailyData) (journal.DailyEntry, error)
	ListDays(ctx context.Context, from, to journal.Date) ([]transport.DaySummary, error)
	AddImage(ctx context.Context, date journal.Date, url, storageKey string) (id, featured string, err error)
	DeleteImage(ctx context.Context, date journal.Date, url string) (featured string, err error)
	AddVideo(ctx context.Context, date journal.Date, url string, tags []string) (id string, err error)
	DeleteVideo(ctx context.Context, date journal.Date, url string) error
	ListTags(ctx context.Context) ([]string, error)

	ListTasks(ctx context.Context, date journal.Date) ([]journal.TodoItem, error)
	CreateTask(ctx context.Context, date journal.Date, text string, global bool) (journal.TodoItem, error)
	UpdateTask(ctx context.Context, id string, date journal.Date, text string, completed bool) (journal.TodoItem, error)
	DeleteTask(ctx context.Context, id string) error

	ListQuotes(ctx context.Context) ([]journal.Quote, error)
	AddQuote(ctx context.Context, q journal.Quote) (journal.Quote, error)
	DeleteQuote(ctx context.Context, id string) error

	PresignUpload(ctx context.Context, fileName, contentType string, size int64) (*Upload, error)
	Motivate(ctx context.Context, goal, journalText string) (string, error)
}
