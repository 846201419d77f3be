// Package metadata stores small client-side facts that must survive restarts,
// such as the last signed-in identity used for offline login.
package metadata

import (
	"context"
)

// Keys used by the auth service.
const (
	KeyEmail    = "email"
	KeyUserID   = "user_id"
	KeySalt     = "salt"
	KeyVerifier = "verifier"
)

// Repository is a byte-valued key store. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
