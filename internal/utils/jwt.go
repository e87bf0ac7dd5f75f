package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiryClaim is returned when a JWT carries no exp claim.
var ErrNoExpiryClaim = errors.New("token has no exp claim")

// ParseJWTExpiry reads the exp claim of an access token without verifying
// its signature. The identity server signs the token; the client only needs
// the expiry to schedule a refresh.
func ParseJWTExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("parse jwt: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiryClaim
	}

	return exp.Time, nil
}

// ParseJWTSubject reads the sub claim of a token without verifying it.
func ParseJWTSubject(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", err
	}

	return token.Claims.GetSubject()
}
