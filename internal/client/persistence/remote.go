package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
)

// Remote adapts three server calls to the Adapter contract. A NotFound from
// the server is absence. An unauthorized session becomes
// common.ErrAuthRequired; any other failure wraps common.ErrRemoteFailure.
type Remote[T any] struct {
	load   func(ctx context.Context, key string) (T, error)
	save   func(ctx context.Context, key string, value T) error
	delete func(ctx context.Context, key string) error
}

var _ Adapter[struct{}] = (*Remote[struct{}])(nil)

// NewRemote binds the server calls. A nil del makes Delete a no-op.
func NewRemote[T any](
	load func(ctx context.Context, key string) (T, error),
	save func(ctx context.Context, key string, value T) error,
	del func(ctx context.Context, key string) error,
) *Remote[T] {
	return &Remote[T]{load: load, save: save, delete: del}
}

func (r *Remote[T]) Load(ctx context.Context, key string) (T, bool, error) {
	var zero T
	v, err := r.load(ctx, key)
	if errors.Is(err, common.ErrorNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, remoteError("load", key, err)
	}
	return v, true, nil
}

func (r *Remote[T]) Save(ctx context.Context, key string, value T) error {
	if err := r.save(ctx, key, value); err != nil {
		return remoteError("save", key, err)
	}
	return nil
}

func (r *Remote[T]) Delete(ctx context.Context, key string) error {
	if r.delete == nil {
		return nil
	}
	err := r.delete(ctx, key)
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return remoteError("delete", key, err)
}

func remoteError(op, key string, err error) error {
	if errors.Is(err, common.ErrorUnauthorized) {
		return fmt.Errorf("%s %s: %w: %w", op, key, common.ErrAuthRequired, err)
	}
	return fmt.Errorf("%s %s: %w: %w", op, key, common.ErrRemoteFailure, err)
}
