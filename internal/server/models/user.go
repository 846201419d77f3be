// Package models holds server-only records that never leave the server in
// this form: accounts and refresh tokens. Journal content uses the shared
// journal package.
package models

import "time"

// User is an account. Salt and Verifier come from the client; the password
// itself is never sent.
type User struct {
	ID        string
	Email     string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
