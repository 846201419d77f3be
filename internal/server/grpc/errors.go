package grpc

import (
	"errors"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusFromError maps service sentinels to gRPC codes. Anything unknown is
// Internal and its text is not sent to the caller.
func statusFromError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
