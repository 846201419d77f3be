package persistence

import (
	"context"
	"errors"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
)

// AuthState reports whether a user session is active.
type AuthState interface {
	Authenticated() bool
}

// Switch routes each call to the remote adapter while a session is active and
// to the local adapter otherwise. The check happens per call, so a sign-in
// or sign-out takes effect on the next call. A remote call rejected for lack
// of a session falls back to local storage.
type Switch[T any] struct {
	local  Adapter[T]
	remote Adapter[T]
	auth   AuthState
	logger logging.Logger
}

var _ Adapter[struct{}] = (*Switch[struct{}])(nil)

func NewSwitch[T any](local, remote Adapter[T], auth AuthState, logger logging.Logger) *Switch[T] {
	return &Switch[T]{local: local, remote: remote, auth: auth, logger: logger}
}

// Remote reports whether calls currently go to the server.
func (s *Switch[T]) Remote() bool {
	return s.auth.Authenticated()
}

func (s *Switch[T]) Load(ctx context.Context, key string) (T, bool, error) {
	if !s.auth.Authenticated() {
		return s.local.Load(ctx, key)
	}
	v, found, err := s.remote.Load(ctx, key)
	if errors.Is(err, common.ErrAuthRequired) {
		s.logger.Warn(ctx, "session rejected, loading locally", "key", key)
		return s.local.Load(ctx, key)
	}
	return v, found, err
}

func (s *Switch[T]) Save(ctx context.Context, key string, value T) error {
	if !s.auth.Authenticated() {
		return s.local.Save(ctx, key, value)
	}
	err := s.remote.Save(ctx, key, value)
	if errors.Is(err, common.ErrAuthRequired) {
		s.logger.Warn(ctx, "session rejected, saving locally", "key", key)
		return s.local.Save(ctx, key, value)
	}
	return err
}

func (s *Switch[T]) Delete(ctx context.Context, key string) error {
	if !s.auth.Authenticated() {
		return s.local.Delete(ctx, key)
	}
	err := s.remote.Delete(ctx, key)
	if errors.Is(err, common.ErrAuthRequired) {
		return s.local.Delete(ctx, key)
	}
	return err
}
