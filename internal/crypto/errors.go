// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrDecryptionFailed is returned for every failure to open an envelope.
	// Wrong keys and corrupted envelopes are deliberately indistinguishable.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrNotCipher is returned when a value passed for decryption is not a
	// cipher envelope.
	ErrNotCipher = errors.New("value is not a cipher envelope")

	// ErrInvalidKey is returned when a key is not 32 base64-encoded bytes.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidSalt is returned when DeriveKey is called without a salt.
	ErrInvalidSalt = errors.New("invalid salt")
)
