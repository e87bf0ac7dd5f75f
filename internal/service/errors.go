// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

// User errors. They are expected and returned to the caller as is.
var (
	ErrNoVault       = errors.New("no vault")
	ErrVaultLocked   = errors.New("vault is locked")
	ErrWrongPassword = errors.New("wrong password")

	ErrEmptyNote = errors.New("cannot lock a note without content")
)

var (
	ErrPremiumRequired = errors.New("premium subscription required")

	// ErrRefreshTimeout is returned when the refresh critical section could
	// not be entered within the configured bound.
	ErrRefreshTimeout = errors.New("timed out waiting for token refresh")

	// ErrSessionExpired wraps an authentication-level rejection of the
	// refresh token. The user has to sign in again.
	ErrSessionExpired = errors.New("session expired")

	ErrNoUser      = errors.New("no user")
	ErrNoMasterKey = errors.New("no master key")
	ErrUnknownKey  = errors.New("unknown key id")
)

// ItemDecryptionError aborts a password rotation. NoteID names the item that
// could not be opened with the old password.
type ItemDecryptionError struct {
	NoteID string
	Err    error
}

func (e *ItemDecryptionError) Error() string {
	return fmt.Sprintf("could not decrypt content of note %s: %v", e.NoteID, e.Err)
}

func (e *ItemDecryptionError) Unwrap() error {
	return e.Err
}
