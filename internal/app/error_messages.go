// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing messages shared by the notevault
// command line.
//
// All Msg* constants are human-readable strings printed when a command
// fails. Keeping them in one place keeps the wording consistent across
// commands.
package app

const (
	// MsgNoVault is shown when a password-dependent command runs before a
	// vault was created.
	MsgNoVault = "no vault exists yet"

	// MsgVaultLocked is shown when the vault password is not cached.
	MsgVaultLocked = "vault is locked"

	// MsgWrongPassword is shown when the vault key envelope or a locked note
	// did not open with the given password.
	MsgWrongPassword = "wrong vault password"

	// MsgPremiumRequired is shown when the account plan does not include the
	// vault.
	MsgPremiumRequired = "the vault needs a premium subscription"

	// MsgNoteNotFound is shown when no content is stored for a note id.
	MsgNoteNotFound = "note not found"

	// MsgEmptyNote is shown when a note without content is put behind the
	// vault.
	MsgEmptyNote = "note has no content to lock"

	// MsgNotSignedIn is shown when a command needs an account but no token
	// or user record is stored.
	MsgNotSignedIn = "not signed in"

	// MsgSessionExpired is shown when the identity server rejected the
	// refresh token. The user has to sign in again.
	MsgSessionExpired = "session expired, sign in again"

	// MsgRefreshTimeout is shown when the token refresh did not finish in
	// time.
	MsgRefreshTimeout = "token refresh timed out"

	// MsgServerUnavailable is shown on transport failures.
	MsgServerUnavailable = "server unavailable or no network"

	// MsgNoMasterKey is shown when account keys are needed and no account
	// password was given.
	MsgNoMasterKey = "account password is needed to open account keys"

	// MsgPasswordMismatch is shown when a confirmation prompt differs.
	MsgPasswordMismatch = "passwords do not match"
)
