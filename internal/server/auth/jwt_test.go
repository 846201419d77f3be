package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	id := Identity{UserID: "user-123", Email: "a@example.com"}

	tok, err := GenerateToken(id, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if got != id {
		t.Fatalf("identity mismatch: got %+v want %+v", got, id)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(Identity{UserID: "u1"}, []byte("secret"), -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok, []byte("secret"))
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(Identity{UserID: "u2"}, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_RejectsOtherIssuerAndAlg(t *testing.T) {
	t.Parallel()

	secret := []byte("k")

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u",
	})
	s, err := other.SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(s, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected invalid token for foreign issuer, got %v", err)
	}

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u",
	})
	s, err = hs512.SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(s, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected invalid token for HS512, got %v", err)
	}
}

func TestParseToken_MissingUserID(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(Identity{}, []byte("k"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(tok, []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
