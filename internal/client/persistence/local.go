package persistence

import (
	"context"
	"encoding/json"

	"github.com/saketh1999/consistency-cal-sub000/internal/client/repositories/localstore"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
)

// Local keeps values as JSON text in the local key-value store. It never
// returns an error: storage, parse and quota problems are logged, Load then
// reports the value as absent and Save drops the write.
type Local[T any] struct {
	repo   localstore.Repository
	logger logging.Logger
	quota  int
}

var _ Adapter[struct{}] = (*Local[struct{}])(nil)

// NewLocal builds a local adapter. Values whose encoding exceeds quota bytes
// are not stored; quota <= 0 means unlimited.
func NewLocal[T any](repo localstore.Repository, logger logging.Logger, quota int) *Local[T] {
	return &Local[T]{repo: repo, logger: logger, quota: quota}
}

func (l *Local[T]) Load(ctx context.Context, key string) (T, bool, error) {
	var zero T

	raw, found, err := l.repo.Get(ctx, key)
	if err != nil {
		l.logger.Warn(ctx, "local load failed", "key", key, "error", err)
		return zero, false, nil
	}
	if !found {
		return zero, false, nil
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		l.logger.Warn(ctx, "local value unreadable", "key", key, "error", err)
		return zero, false, nil
	}
	return v, true, nil
}

func (l *Local[T]) Save(ctx context.Context, key string, value T) error {
	b, err := json.Marshal(value)
	if err != nil {
		l.logger.Warn(ctx, "local value not encodable", "key", key, "error", err)
		return nil
	}
	if l.quota > 0 && len(b) > l.quota {
		l.logger.Warn(ctx, "local quota exceeded", "key", key, "size", len(b), "quota", l.quota)
		return nil
	}
	if err := l.repo.Set(ctx, key, string(b)); err != nil {
		l.logger.Warn(ctx, "local save failed", "key", key, "error", err)
	}
	return nil
}

func (l *Local[T]) Delete(ctx context.Context, key string) error {
	if err := l.repo.Delete(ctx, key); err != nil {
		l.logger.Warn(ctx, "local delete failed", "key", key, "error", err)
	}
	return nil
}
