package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/auth"
	"github.com/saketh1999/consistency-cal-sub000/internal/transport"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// identityFrom returns the caller set by accessTokenInterceptor.
func identityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok && id.UserID != ""
}

func withIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// accessTokenInterceptor authenticates every method except the public ones.
// An expired token is reported as "token expired" so clients know to refresh.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if transport.PublicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	id, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(withIdentity(ctx, id), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	args := []any{"method", info.FullMethod, "duration", time.Since(start), "code", status.Code(err).String()}
	if err != nil && status.Code(err) == codes.Internal {
		s.logger.Error(ctx, "request failed", append(args, "error", err)...)
	} else {
		s.logger.Debug(ctx, "request", args...)
	}
	return resp, err
}
