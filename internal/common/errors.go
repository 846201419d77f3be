// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors. An absent record is not a failure: callers
	// translate it into defaults.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorAlreadyExists = errors.New("already exists")

	// Persistence errors surfaced by the client synchronization core.
	ErrRemoteFailure = errors.New("remote failure")
	ErrValidation    = errors.New("validation failure")
	ErrAuthRequired  = errors.New("authentication required")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
