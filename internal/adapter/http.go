// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/utils"
	"github.com/MKhiriev/notevault/models"
)

const (
	tokenEndpoint      = "/connect/token"
	revocationEndpoint = "/connect/revocation"
	usersEndpoint      = "/users"
)

type httpAuthAdapter struct {
	auth *utils.HTTPClient
	api  *utils.HTTPClient

	clientID string

	logger *logger.Logger
}

// NewHTTPAuthAdapter constructs the resty implementation of [AuthAdapter].
// It normalises and validates both hosts from adapterCfg and applies the
// request timeout to each client.
//
// Returns an error if a host is empty or cannot be parsed as a valid URL.
func NewHTTPAuthAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (AuthAdapter, error) {
	authURL, err := normalizeBaseURL(adapterCfg.AuthHost)
	if err != nil {
		return nil, fmt.Errorf("invalid auth host: %w", err)
	}
	apiURL, err := normalizeBaseURL(adapterCfg.APIHost)
	if err != nil {
		return nil, fmt.Errorf("invalid api host: %w", err)
	}

	return &httpAuthAdapter{
		auth:     utils.NewHTTPClient(authURL, adapterCfg.RequestTimeout),
		api:      utils.NewHTTPClient(apiURL, adapterCfg.RequestTimeout),
		clientID: appCfg.ClientID,
		logger:   logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// RefreshToken implements [AuthAdapter]. It POSTs a form-encoded
// refresh_token grant to the token endpoint of the identity server.
func (h *httpAuthAdapter) RefreshToken(ctx context.Context, refreshToken string) (models.Token, error) {
	var token models.Token

	resp, err := h.auth.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": refreshToken,
			"client_id":     h.clientID,
		}).
		SetResult(&token).
		Post(tokenEndpoint)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: refresh token request: %w", ErrRequestFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}
	if token.AccessToken == "" {
		return models.Token{}, fmt.Errorf("%w: refresh token response has no access_token", ErrRequestFailed)
	}

	return token, nil
}

// RevokeToken implements [AuthAdapter].
func (h *httpAuthAdapter) RevokeToken(ctx context.Context, accessToken string) error {
	resp, err := h.authedRequest(ctx, h.auth, accessToken).
		SetFormData(map[string]string{
			"token":     accessToken,
			"client_id": h.clientID,
		}).
		Post(revocationEndpoint)
	if err != nil {
		return fmt.Errorf("%w: revoke request: %w", ErrRequestFailed, err)
	}

	return mapHTTPError(resp)
}

// FetchUser implements [AuthAdapter].
func (h *httpAuthAdapter) FetchUser(ctx context.Context, accessToken string) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx, h.api, accessToken).
		SetResult(&user).
		Get(usersEndpoint)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: fetch user request: %w", ErrRequestFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// UpdateUser implements [AuthAdapter].
func (h *httpAuthAdapter) UpdateUser(ctx context.Context, accessToken string, patch models.UserPatch) error {
	resp, err := h.authedRequest(ctx, h.api, accessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(patch).
		Patch(usersEndpoint)
	if err != nil {
		return fmt.Errorf("%w: update user request: %w", ErrRequestFailed, err)
	}

	return mapHTTPError(resp)
}

func (h *httpAuthAdapter) authedRequest(ctx context.Context, client *utils.HTTPClient, token string) *resty.Request {
	req := client.R().SetContext(ctx)
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
