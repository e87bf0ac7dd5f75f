// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"strings"
	"time"
)

// Well-known OAuth scopes issued by the auth host.
const (
	ScopeSync           = "notesnook.sync"
	ScopeIdentityServer = "IdentityServerApi"
	ScopeOfflineAccess  = "offline_access"
)

// Token is the OAuth token pair held for the signed-in account. Exactly one
// Token exists per account; refreshing replaces it as a whole.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`

	// Scope is the space separated scope list granted by the auth host.
	Scope string `json:"scope"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`

	// IssuedAt is the unix time in milliseconds at which the token was
	// stored locally.
	IssuedAt int64 `json:"issued_at"`
}

// Scopes splits Scope into its members.
func (t Token) Scopes() []string {
	return strings.Fields(t.Scope)
}

// HasAnyScope reports whether the token carries at least one of scopes.
func (t Token) HasAnyScope(scopes ...string) bool {
	granted := t.Scopes()
	for _, s := range scopes {
		if slices.Contains(granted, s) {
			return true
		}
	}
	return false
}

// Expired reports whether issued_at + expires_in*1000 <= now.
func (t Token) Expired(now time.Time) bool {
	return t.IssuedAt+t.ExpiresIn*1000 <= now.UnixMilli()
}

// ExpiresAt returns the moment the access token stops being valid.
func (t Token) ExpiresAt() time.Time {
	return time.UnixMilli(t.IssuedAt + t.ExpiresIn*1000)
}

// Refreshable reports whether the token can be renewed: it needs a refresh
// token and the offline access scope.
func (t Token) Refreshable() bool {
	return t.RefreshToken != "" && t.HasAnyScope(ScopeOfflineAccess)
}
