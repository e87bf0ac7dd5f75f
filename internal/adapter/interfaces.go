// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for the identity server and
// the API host.
//
// The primary abstraction is [AuthAdapter], which decouples the service layer
// from HTTP. Error values defined in errors.go are mapped from the OAuth
// `error` field and HTTP status codes by mapHTTPError so that callers can use
// [errors.Is] (e.g. [ErrInvalidGrant] for a revoked refresh token,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/notevault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_adapter_mock.go -package=mock

// AuthAdapter talks to the identity server (token endpoints) and the API
// host (user record).
type AuthAdapter interface {
	// RefreshToken exchanges refreshToken for a new token pair. The returned
	// token has no IssuedAt; the caller stamps it when storing.
	RefreshToken(ctx context.Context, refreshToken string) (models.Token, error)

	// RevokeToken asks the identity server to revoke accessToken.
	RevokeToken(ctx context.Context, accessToken string) error

	// FetchUser returns the user record for the bearer of accessToken.
	FetchUser(ctx context.Context, accessToken string) (models.User, error)

	// UpdateUser applies patch to the remote user record.
	UpdateUser(ctx context.Context, accessToken string, patch models.UserPatch) error
}
