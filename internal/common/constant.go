// Package common contains shared constants and sentinel errors used across
// consistency-cal components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DateLayout is the wire and storage layout of a calendar date.
const DateLayout = "2006-01-02"

// DefaultMaxUploadBytes caps a single image upload when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20
