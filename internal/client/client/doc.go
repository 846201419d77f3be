// Package client contains the client's connection to the outside world: the
// gRPC journal client and the local SQLite bootstrap.
//
// GRPCClient injects the access token through a unary interceptor and
// transparently refreshes an expired token once per call, serializing
// concurrent refreshes so a rotated refresh token is never reused. Status
// codes are mapped to sentinels that callers match with errors.Is:
// common.ErrorNotFound, common.ErrValidation, common.ErrorAlreadyExists,
// ErrUnauthorized and ErrUnavailable.
//
// InitDatabase opens the local database and applies the embedded goose
// migrations; NewRepositories binds the metadata and local-storage
// repositories to it.
package client
