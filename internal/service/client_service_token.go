// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/internal/clock"
	"github.com/MKhiriev/notevault/internal/events"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/store"
	"github.com/MKhiriev/notevault/internal/utils"
	"github.com/MKhiriev/notevault/models"
)

const tokenKey = "token"

// defaultTokenScopes are used by GetAccessToken when no scopes are given.
var defaultTokenScopes = []string{models.ScopeSync, models.ScopeIdentityServer}

type tokenManager struct {
	kv      store.KVStore
	adapter adapter.AuthAdapter
	bus     *events.Bus
	clock   clock.Clock

	// refresh is the single-flight critical section. A weighted semaphore is
	// used instead of a mutex because acquisition has to be bounded.
	refresh        *semaphore.Weighted
	refreshTimeout time.Duration

	logger *logger.Logger
}

// NewTokenManager builds a TokenManager storing the token in kv under the
// "token" key. refreshTimeout bounds both waiting for a concurrent refresh and
// the refresh call itself.
func NewTokenManager(
	kv store.KVStore,
	authAdapter adapter.AuthAdapter,
	bus *events.Bus,
	clk clock.Clock,
	refreshTimeout time.Duration,
	log *logger.Logger,
) TokenManager {
	return &tokenManager{
		kv:             kv,
		adapter:        authAdapter,
		bus:            bus,
		clock:          clk,
		refresh:        semaphore.NewWeighted(1),
		refreshTimeout: refreshTimeout,
		logger:         log,
	}
}

func (t *tokenManager) GetToken(ctx context.Context, renew, forceRenew bool) (*models.Token, error) {
	token, err := t.readToken(ctx)
	if err != nil || token == nil {
		return nil, err
	}

	if renew && (forceRenew || token.Expired(t.clock.Now())) && token.Refreshable() {
		if err = t.refreshToken(ctx, forceRenew); err != nil {
			return nil, err
		}
		return t.readToken(ctx)
	}

	return token, nil
}

func (t *tokenManager) GetAccessToken(ctx context.Context, scopes []string, forceRenew bool) (string, error) {
	if len(scopes) == 0 {
		scopes = defaultTokenScopes
	}

	token, err := t.GetToken(ctx, true, forceRenew)
	if err != nil || token == nil {
		return "", err
	}

	if !token.HasAnyScope(scopes...) {
		t.logger.Debug().
			Str("func", "tokenManager.GetAccessToken").
			Strs("required", scopes).
			Str("granted", token.Scope).
			Msg("token scope does not cover the request")
		return "", nil
	}

	return token.AccessToken, nil
}

// refreshToken renews the stored token. Only one refresh runs at a time;
// callers that waited for the lock re-read the token and skip the network
// call when somebody else already renewed it.
func (t *tokenManager) refreshToken(ctx context.Context, forceRenew bool) error {
	log := t.logger.With().Str("func", "tokenManager.refreshToken").Logger()

	ctx, cancel := context.WithTimeout(ctx, t.refreshTimeout)
	defer cancel()

	if err := t.refresh.Acquire(ctx, 1); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Dur("timeout", t.refreshTimeout).Msg("gave up waiting for a concurrent token refresh")
			return ErrRefreshTimeout
		}
		return err
	}
	defer t.refresh.Release(1)

	token, err := t.readToken(ctx)
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}
	if !forceRenew && !token.Expired(t.clock.Now()) {
		log.Debug().Msg("token already refreshed by a concurrent caller")
		return nil
	}
	if !token.Refreshable() {
		return nil
	}

	renewed, err := t.adapter.RefreshToken(ctx, token.RefreshToken)
	if err != nil {
		if adapter.IsAuthError(err) {
			log.Warn().Err(err).Msg("refresh token rejected, session expired")
			t.bus.Publish(events.UserSessionExpired, nil)
			return fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", ErrRefreshTimeout, err)
		}
		log.Err(err).Msg("token refresh failed")
		return fmt.Errorf("refresh token: %w", err)
	}

	if renewed.RefreshToken == "" {
		renewed.RefreshToken = token.RefreshToken
	}

	if err = t.SaveToken(ctx, renewed); err != nil {
		return err
	}

	t.bus.Publish(events.TokenRefreshed, nil)
	return nil
}

func (t *tokenManager) SaveToken(ctx context.Context, token models.Token) error {
	token.IssuedAt = t.clock.Now().UnixMilli()

	if token.ExpiresIn <= 0 {
		exp, err := utils.ParseJWTExpiry(token.AccessToken)
		if err != nil {
			t.logger.Debug().Err(err).
				Str("func", "tokenManager.SaveToken").
				Msg("access token carries no usable expiry")
		} else {
			token.ExpiresIn = int64(exp.Sub(t.clock.Now()).Seconds())
		}
	}

	if err := t.kv.Write(ctx, tokenKey, token); err != nil {
		t.logger.Err(err).Str("func", "tokenManager.SaveToken").Msg("failed to store token")
		return fmt.Errorf("save token: %w", err)
	}

	return nil
}

func (t *tokenManager) RevokeToken(ctx context.Context) error {
	token, err := t.readToken(ctx)
	if err != nil {
		return err
	}

	if err = t.kv.Delete(ctx, tokenKey); err != nil {
		t.logger.Err(err).Str("func", "tokenManager.RevokeToken").Msg("failed to delete token")
		return fmt.Errorf("delete token: %w", err)
	}

	if token == nil || token.AccessToken == "" {
		return nil
	}

	if err = t.adapter.RevokeToken(ctx, token.AccessToken); err != nil {
		t.logger.Warn().Err(err).
			Str("func", "tokenManager.RevokeToken").
			Msg("remote token revocation failed, local token already removed")
	}

	return nil
}

func (t *tokenManager) readToken(ctx context.Context) (*models.Token, error) {
	var token models.Token
	ok, err := t.kv.Read(ctx, tokenKey, &token)
	if err != nil {
		t.logger.Err(err).Str("func", "tokenManager.readToken").Msg("failed to read token")
		return nil, fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &token, nil
}
