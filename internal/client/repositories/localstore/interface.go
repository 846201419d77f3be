// Package localstore is the client's key-value local storage: one text value
// per scope key, the way a browser's localStorage behaves.
package localstore

import "context"

type Repository interface {
	// Get reports found=false for a missing key.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys lists stored keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Clear(ctx context.Context) error
}
