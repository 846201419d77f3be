package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/auth"
	"github.com/saketh1999/consistency-cal-sub000/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer(secret string) *GRPCServer {
	return NewGRPCServer("", logging.Nop{}, Services{}, secret)
}

func withToken(tok string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, tok))
}

func TestInterceptor_PublicMethodSkipsAuth(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: transport.FullMethod("Login")}
	called := false

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		called = true
		return "ok", nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", resp)
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: transport.FullMethod("GetDay")}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestInterceptor_InvalidAndExpiredToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: transport.FullMethod("GetDay")}
	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(withToken("garbage"), nil, info, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "invalid token", status.Convert(err).Message())

	expired, err := auth.GenerateToken(auth.Identity{UserID: "u1"}, []byte("secret"), -time.Minute)
	require.NoError(t, err)
	_, err = s.accessTokenInterceptor(withToken(expired), nil, info, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, common.ErrTokenExpired.Error(), status.Convert(err).Message())
}

func TestInterceptor_ValidTokenSetsIdentity(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: transport.FullMethod("GetDay")}
	tok, err := auth.GenerateToken(auth.Identity{UserID: "u1", Email: "u@x.io"}, []byte("secret"), time.Minute)
	require.NoError(t, err)

	var got auth.Identity
	_, err = s.accessTokenInterceptor(withToken(tok), nil, info, func(ctx context.Context, req any) (any, error) {
		id, ok := identityFrom(ctx)
		require.True(t, ok)
		got = id
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: "u1", Email: "u@x.io"}, got)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{nil, codes.OK},
		{common.ErrorNotFound, codes.NotFound},
		{common.ErrValidation, codes.InvalidArgument},
		{common.ErrorAlreadyExists, codes.AlreadyExists},
		{common.ErrorUnauthorized, codes.Unauthenticated},
		{common.ErrRefreshTokenExpired, codes.Unauthenticated},
		{errBoom{}, codes.Internal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, status.Code(statusFromError(tt.err)), "%v", tt.err)
	}
	assert.Equal(t, "internal error", status.Convert(statusFromError(errBoom{})).Message())
}
