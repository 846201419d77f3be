// Package services contains the server's business logic. Handlers translate
// wire messages into calls here; services own transactions and talk to
// repositories through a repomanager.RepositoryManager.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/cryptox"
	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/auth"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/config"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/models"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a single-use refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Session is the result of a successful login.
type Session struct {
	UserID string
	Email  string
	TokenPair
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates an account. A taken email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email string, salt, verifier []byte) (*models.User, error) {
	if email == "" || len(salt) == 0 || len(verifier) == 0 {
		return nil, fmt.Errorf("email, salt and verifier are required: %w", common.ErrValidation)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Email: email, Salt: salt, Verifier: verifier})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// GetSalt returns the stored salt, or a random one for unknown emails so the
// response does not reveal whether an account exists.
func (s *UserService) GetSalt(ctx context.Context, email string) ([]byte, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.GenerateRandByteArray(cryptox.SaltSize), nil
		}
		return nil, common.ErrorInternal
	}
	return user.Salt, nil
}

func (s *UserService) Login(ctx context.Context, email string, verifierCandidate []byte) (*Session, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !cryptox.VerifierMatches(user.Verifier, verifierCandidate) {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, auth.Identity{UserID: user.ID, Email: user.Email}, s.db)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: user.ID, Email: user.Email, TokenPair: *pair}, nil
}

// RefreshToken rotates refreshToken inside a transaction and returns a new
// pair. Expired tokens yield common.ErrRefreshTokenExpired, unknown ones
// common.ErrorUnauthorized.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, auth.Identity{UserID: token.UserID, Email: token.Email}, tx)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes refreshToken. Unknown tokens are ignored.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// PurgeExpiredTokens deletes refresh tokens past their expiry.
func (s *UserService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, time.Now())
}

func (s *UserService) generateTokenPair(ctx context.Context, id auth.Identity, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(id, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, id.UserID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
