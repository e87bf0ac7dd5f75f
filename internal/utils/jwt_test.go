package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestParseJWTExpiry_Success(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"exp": exp.Unix(), "sub": "user-1"})

	got, err := ParseJWTExpiry(token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("expected %v, got %v", exp, got)
	}
}

func TestParseJWTExpiry_ExpiredTokenStillParses(t *testing.T) {
	exp := time.Now().Add(-time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"exp": exp.Unix()})

	got, err := ParseJWTExpiry(token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("expected %v, got %v", exp, got)
	}
}

func TestParseJWTExpiry_NoClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-1"})

	_, err := ParseJWTExpiry(token)
	if !errors.Is(err, ErrNoExpiryClaim) {
		t.Fatalf("expected ErrNoExpiryClaim, got: %v", err)
	}
}

func TestParseJWTExpiry_Malformed(t *testing.T) {
	if _, err := ParseJWTExpiry("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}

func TestParseJWTSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-42"})

	sub, err := ParseJWTSubject(token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if sub != "user-42" {
		t.Errorf("expected user-42, got %s", sub)
	}
}
