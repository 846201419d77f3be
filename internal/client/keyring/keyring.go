// Package keyring keeps the signed-in session in the OS keyring.
package keyring

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// Service is the keyring service name entries are stored under.
	Service = "consistency-cal"
	// sessionUser is the keyring account holding the session.
	sessionUser = "session"
)

var (
	// ErrNotFound is returned when no session is stored.
	ErrNotFound = errors.New("session not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be used.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Session is what survives a client restart.
type Session struct {
	Email        string `json:"email"`
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Store is implemented by Keyring and by test fakes.
type Store interface {
	Load() (Session, error)
	Save(s Session) error
	Delete() error
}

// Keyring stores the session in the OS keyring under service.
type Keyring struct {
	service string
}

var _ Store = (*Keyring)(nil)

func New(service string) *Keyring {
	if service == "" {
		service = Service
	}
	return &Keyring{service: service}
}

// Load returns ErrNotFound if no session is stored.
func (k *Keyring) Load() (Session, error) {
	raw, err := keyring.Get(k.service, sessionUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (k *Keyring) Save(s Session) error {
	if s.RefreshToken == "" {
		return errors.New("session has no refresh token")
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := keyring.Set(k.service, sessionUser, string(raw)); err != nil {
		return fmt.Errorf("failed to store session in keyring: %w", err)
	}
	return nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (k *Keyring) Delete() error {
	err := keyring.Delete(k.service, sessionUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: delete session: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring answers at all.
func IsAvailable() bool {
	_, err := keyring.Get(Service, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
