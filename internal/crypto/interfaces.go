// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto is the crypto primitive provider of notevault.
//
// It derives symmetric keys from passwords (Argon2id), seals and opens byte
// payloads into [models.Cipher] envelopes (XChaCha20-Poly1305) and generates
// random symmetric keys and curve25519 key pairs. It knows nothing about
// vaults, users or storage.
//
// Scheme:
//
//	Key    = DeriveKey(password, salt)         (Argon2id, 32 bytes)
//	Cipher = Encrypt(Key, plaintext)           (random 24-byte nonce)
//	plain  = Decrypt(Key, Cipher)              (ErrDecryptionFailed on any mismatch)
package crypto

import "github.com/MKhiriev/notevault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_provider_mock.go -package=mock

// Provider is the contract of the crypto primitive provider.
type Provider interface {
	// GenerateSalt reads a fresh 16-byte KDF salt from the OS CSPRNG.
	GenerateSalt() ([]byte, error)

	// DeriveKey derives a 256-bit key from password and salt with Argon2id.
	// The same inputs always produce the same key.
	DeriveKey(password string, salt []byte) (models.Key, error)

	// Encrypt seals plaintext under key. The envelope records key.Salt so a
	// password-derived key can be re-derived on decryption.
	Encrypt(key models.Key, plaintext []byte) (models.Cipher, error)

	// Decrypt opens an envelope sealed by Encrypt. Any failure to
	// authenticate (wrong key, tampered or corrupted envelope) yields
	// ErrDecryptionFailed and nothing else.
	Decrypt(key models.Key, cipher models.Cipher) ([]byte, error)

	// EncryptWithPassword derives a key from password and a fresh salt and
	// seals plaintext under it.
	EncryptWithPassword(password string, plaintext []byte) (models.Cipher, error)

	// DecryptWithPassword re-derives the key from password and the salt
	// stored in cipher and opens it.
	DecryptWithPassword(password string, cipher models.Cipher) ([]byte, error)

	// IsCipher reports whether value is a cipher envelope. See [IsCipher].
	IsCipher(value any) bool

	// GenerateRandomKey returns a random symmetric key with a random salt.
	GenerateRandomKey() (models.Key, error)

	// GenerateKeyPair returns a random curve25519 key pair.
	GenerateKeyPair() (models.KeyPair, error)
}
