package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/transport"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// GRPCClient talks to the journal server. Tokens are attached by a unary
// interceptor which transparently refreshes an expired access token once.
type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      transport.JournalClient

	mu       sync.Mutex
	tokens   TokenPair
	onTokens func(TokenPair)

	refreshMu sync.Mutex
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	used := s.Tokens()

	err := invoker(withAccessToken(ctx, used.AccessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}

	fresh, rerr := s.refresh(ctx, used)
	if rerr != nil {
		return err
	}

	return invoker(withAccessToken(ctx, fresh.AccessToken), method, req, reply, cc, opts...)
}

// refresh rotates the token pair unless another call already did so since
// used was read.
func (s *GRPCClient) refresh(ctx context.Context, used TokenPair) (TokenPair, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	current := s.Tokens()
	if current.AccessToken != used.AccessToken {
		return current, nil
	}
	if current.RefreshToken == "" {
		return TokenPair{}, ErrUnauthorized
	}

	resp, err := s.client.RefreshToken(ctx, &transport.RefreshTokenRequest{RefreshToken: current.RefreshToken})
	if err != nil {
		return TokenPair{}, err
	}

	fresh := TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.SetTokens(fresh)
	return fresh, nil
}

// NewGRPCClient builds a client for endpointURL. No connection is made until
// the first call. timeout bounds every call; zero means no bound beyond the
// caller's context.
func NewGRPCClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = transport.NewJournalClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// SetTokens replaces the session tokens and notifies the OnTokens callback.
func (s *GRPCClient) SetTokens(p TokenPair) {
	s.mu.Lock()
	s.tokens = p
	fn := s.onTokens
	s.mu.Unlock()

	if fn != nil {
		fn(p)
	}
}

func (s *GRPCClient) Tokens() TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}

// OnTokens registers fn to be called whenever the tokens change, including
// after a transparent refresh.
func (s *GRPCClient) OnTokens(fn func(TokenPair)) {
	s.mu.Lock()
	s.onTokens = fn
	s.mu.Unlock()
}

func (s *GRPCClient) call(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &transport.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email string, salt, verifier []byte) error {
	ctx, cancel := s.call(ctx)
	defer cancel()

	_, err := s.client.Register(ctx, &transport.RegisterRequest{Email: email, Salt: salt, Verifier: verifier})
	return s.mapError(err)
}

func (s *GRPCClient) GetSalt(ctx context.Context, email string) ([]byte, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.GetSalt(ctx, &transport.GetSaltRequest{Email: email})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Salt, nil
}

func (s *GRPCClient) Login(ctx context.Context, email string, verifier []byte) (string, error) {
	ctx, cancel := s.call(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &transport.LoginRequest{Email: email, Verifier: verifier})
	if err != nil {
		return "", s.mapError(err)
	}

	s.SetTokens(TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken})
	return resp.UserID, nil
}

// Logout revokes the refresh token on the server and forgets the tokens
// locally even when the server cannot be reached.
func (s *GRPCClient) Logout(ctx context.Context) error {
	ctx, cancel := s.call(ctx)
	defer cancel()

	refresh := s.Tokens().RefreshToken
	s.SetTokens(TokenPair{})
	if refresh == "" {
		return nil
	}

	_, err := s.client.Logout(ctx, &transport.LogoutRequest{RefreshToken: refresh})
	return s.mapError(err)
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%s: %w", st.Message(), common.ErrValidation)
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
