package grpc

import (
	"context"
	"net"

	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/models"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/motivation"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/dailies"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/services"
	"github.com/saketh1999/consistency-cal-sub000/internal/transport"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, email string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, email string) ([]byte, error)
	Login(ctx context.Context, email string, verifierCandidate []byte) (*services.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type JournalService interface {
	GetDay(ctx context.Context, userID string, date journal.Date) (*journal.DailyEntry, error)
	SaveDay(ctx context.Context, userID string, date journal.Date, data journal.DailyData) (*journal.DailyEntry, error)
	ListDays(ctx context.Context, userID string, from, to journal.Date) ([]dailies.Summary, error)
	AddImage(ctx context.Context, userID string, date journal.Date, url, storageKey string) (string, string, error)
	DeleteImage(ctx context.Context, userID string, date journal.Date, url string) (string, error)
	AddVideo(ctx context.Context, userID string, date journal.Date, url string, tags []string) (*journal.Video, error)
	DeleteVideo(ctx context.Context, userID string, date journal.Date, url string) error
	ListTags(ctx context.Context, userID string) ([]string, error)
}

type TaskService interface {
	List(ctx context.Context, userID string, date journal.Date) ([]journal.TodoItem, error)
	Create(ctx context.Context, userID string, date journal.Date, text string, global bool) (journal.TodoItem, error)
	Update(ctx context.Context, userID, id string, date journal.Date, text string, completed bool) (journal.TodoItem, error)
	Delete(ctx context.Context, userID, id string) error
}

type QuoteService interface {
	List(ctx context.Context, userID string) ([]journal.Quote, error)
	Add(ctx context.Context, userID string, q journal.Quote) (*journal.Quote, error)
	Delete(ctx context.Context, userID, id string) error
}

// Services groups the business logic the server exposes.
type Services struct {
	Users      UserService
	Journal    JournalService
	Tasks      TaskService
	Quotes     QuoteService
	Blobs      services.BlobStore
	Motivation motivation.Generator
}

type GRPCServer struct {
	transport.UnimplementedJournalServer
	address   string
	svc       Services
	logger    logging.Logger
	jwtSecret []byte
}

var _ transport.JournalServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		svc:       svc,
		jwtSecret: []byte(secretKey),
	}
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	transport.RegisterJournalServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())
	return srv.Serve(listen)
}
