// Package services contains application services for the journal client.
// This file defines the authentication service: online/offline login,
// register, logout, session restore from the OS keyring and session-change
// notifications.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/saketh1999/consistency-cal-sub000/internal/client/client"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/keyring"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/repositories/metadata"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/cryptox"
	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
)

// ErrLocalDataNotAvailable is returned by offline login when nobody has
// signed in on this device before.
var ErrLocalDataNotAvailable = errors.New("no cached credentials on this device")

// Session describes who is signed in. Online sessions hold server tokens;
// offline sessions were verified against cached credentials and work on
// local storage only.
type Session struct {
	Email  string
	UserID string
	Online bool
}

// AuthService signs users in and out and tracks the current session.
// It satisfies persistence.AuthState.
type AuthService struct {
	client client.Client
	db     *sql.DB
	keys   keyring.Store
	logger logging.Logger

	mu      sync.RWMutex
	session *Session
	subs    map[int]func(Session, bool)
	nextSub int
}

func NewAuthService(c client.Client, db *sql.DB, keys keyring.Store, logger logging.Logger) *AuthService {
	a := &AuthService{
		client: c,
		db:     db,
		keys:   keys,
		logger: logger,
		subs:   map[int]func(Session, bool){},
	}
	c.OnTokens(a.tokensChanged)
	return a
}

func (a *AuthService) metadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

// Authenticated reports whether data calls should go to the server.
func (a *AuthService) Authenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session != nil && a.session.Online
}

// Current returns the session, if any.
func (a *AuthService) Current() (Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return Session{}, false
	}
	return *a.session, true
}

// Subscribe registers fn to be called after every session change with the
// new session and whether one exists. The returned func unsubscribes.
func (a *AuthService) Subscribe(fn func(s Session, ok bool)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextSub
	a.nextSub++
	a.subs[id] = fn
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subs, id)
	}
}

func (a *AuthService) setSession(s *Session) {
	a.mu.Lock()
	a.session = s
	subs := make([]func(Session, bool), 0, len(a.subs))
	for _, fn := range a.subs {
		subs = append(subs, fn)
	}
	a.mu.Unlock()

	var cur Session
	if s != nil {
		cur = *s
	}
	for _, fn := range subs {
		fn(cur, s != nil)
	}
}

// tokensChanged keeps the keyring in step with rotated tokens.
func (a *AuthService) tokensChanged(p client.TokenPair) {
	s, ok := a.Current()
	if !ok || !s.Online {
		return
	}
	if p.RefreshToken == "" {
		if err := a.keys.Delete(); err != nil {
			a.logger.Warn(context.Background(), "keyring delete failed", "error", err)
		}
		return
	}
	err := a.keys.Save(keyring.Session{
		Email:        s.Email,
		UserID:       s.UserID,
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
	})
	if err != nil {
		a.logger.Warn(context.Background(), "keyring save failed", "error", err)
	}
}

// Restore resumes the session kept in the keyring, if there is one. The
// tokens are trusted until the server rejects them.
func (a *AuthService) Restore(ctx context.Context) (bool, error) {
	ks, err := a.keys.Load()
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	a.setSession(&Session{Email: ks.Email, UserID: ks.UserID, Online: true})
	a.client.SetTokens(client.TokenPair{AccessToken: ks.AccessToken, RefreshToken: ks.RefreshToken})
	a.logger.Info(ctx, "session restored", "email", ks.Email)
	return true, nil
}

// Login signs in against the server. When the server cannot be reached it
// falls back to the credentials cached by the last online login.
func (a *AuthService) Login(ctx context.Context, email string, password []byte) (Session, error) {
	s, err := a.OnlineLogin(ctx, email, password)
	if errors.Is(err, client.ErrUnavailable) {
		a.logger.Info(ctx, "server unavailable, trying offline login", "email", email)
		return a.OfflineLogin(ctx, email, password)
	}
	return s, err
}

// OnlineLogin authenticates against the server, caches offline credentials
// (email, salt, verifier) and stores the tokens in the keyring.
func (a *AuthService) OnlineLogin(ctx context.Context, email string, password []byte) (Session, error) {
	salt, err := a.client.GetSalt(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("get salt error: %w", err)
	}

	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	verifier := cryptox.MakeVerifier(key)

	userID, err := a.client.Login(ctx, email, verifier)
	if err != nil {
		return Session{}, fmt.Errorf("login error: %w", err)
	}

	if err := a.saveOfflineData(ctx, email, userID, salt, verifier); err != nil {
		return Session{}, fmt.Errorf("offline data saving error: %w", err)
	}

	s := Session{Email: email, UserID: userID, Online: true}
	a.setSession(&s)
	a.tokensChanged(a.client.Tokens())
	a.logger.Info(ctx, "signed in", "email", email)
	return s, nil
}

// OfflineLogin verifies the password against the cached verifier. The
// resulting session works on local storage only.
func (a *AuthService) OfflineLogin(ctx context.Context, email string, password []byte) (Session, error) {
	repo := a.metadataRepo()

	savedEmail, err := repo.Get(ctx, metadata.KeyEmail)
	if err != nil {
		return Session{}, err
	}
	if savedEmail == nil {
		return Session{}, ErrLocalDataNotAvailable
	}
	if string(savedEmail) != email {
		return Session{}, client.ErrUnauthorized
	}

	salt, err := repo.Get(ctx, metadata.KeySalt)
	if err != nil {
		return Session{}, err
	}
	verifier, err := repo.Get(ctx, metadata.KeyVerifier)
	if err != nil {
		return Session{}, err
	}
	if salt == nil || verifier == nil {
		return Session{}, ErrLocalDataNotAvailable
	}
	userID, err := repo.Get(ctx, metadata.KeyUserID)
	if err != nil {
		return Session{}, err
	}

	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	if !cryptox.VerifierMatches(verifier, cryptox.MakeVerifier(key)) {
		return Session{}, client.ErrUnauthorized
	}

	s := Session{Email: email, UserID: string(userID)}
	a.setSession(&s)
	a.logger.Info(ctx, "signed in offline", "email", email)
	return s, nil
}

// saveOfflineData persists what offline login needs in a single transaction.
func (a *AuthService) saveOfflineData(ctx context.Context, email, userID string, salt, verifier []byte) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for k, v := range map[string][]byte{
			metadata.KeyEmail:    []byte(email),
			metadata.KeyUserID:   []byte(userID),
			metadata.KeySalt:     salt,
			metadata.KeyVerifier: verifier,
		} {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Register creates an account with a fresh salt and signs in.
func (a *AuthService) Register(ctx context.Context, email string, password []byte) (Session, error) {
	if email == "" || len(password) == 0 {
		return Session{}, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}
	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	key := cryptox.DeriveMasterKey(password, salt)
	verifier := cryptox.MakeVerifier(key)
	common.WipeByteArray(key)

	if err := a.client.Register(ctx, email, salt, verifier); err != nil {
		return Session{}, err
	}
	return a.OnlineLogin(ctx, email, password)
}

// Logout ends the session. The server call is best effort; local tokens
// and the keyring entry are always dropped.
func (a *AuthService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "server logout failed", "error", err)
	}
	a.setSession(nil)
	return a.keys.Delete()
}

// Expire drops an online session whose tokens the server no longer accepts.
// The user stays signed in offline.
func (a *AuthService) Expire(ctx context.Context) {
	s, ok := a.Current()
	if !ok || !s.Online {
		return
	}
	a.client.SetTokens(client.TokenPair{})
	if err := a.keys.Delete(); err != nil {
		a.logger.Warn(ctx, "keyring delete failed", "error", err)
	}
	s.Online = false
	a.setSession(&s)
	a.logger.Warn(ctx, "session expired", "email", s.Email)
}

func (a *AuthService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *AuthService) Close() error {
	return a.client.Close()
}

// ClearOfflineData wipes cached credentials so this device can no longer
// sign in offline.
func (a *AuthService) ClearOfflineData(ctx context.Context) error {
	return a.metadataRepo().Clear(ctx)
}
