// Package auth issues and verifies HS256 access tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
)

const issuer = "consistency-cal"

// Claims carries the identity of the signed-in user.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
}

// Identity is what handlers learn from a verified token.
type Identity struct {
	UserID string
	Email  string
}

func GenerateToken(id Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: id.UserID,
		Email:  id.Email,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString. Expired tokens yield common.ErrTokenExpired,
// anything else that fails verification yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
