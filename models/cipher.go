// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Cipher is the tagged envelope produced by the crypto provider. Every field
// except Alg and Format is base64 (standard encoding). Without the key the
// Cipher field is indistinguishable from random bytes.
//
// A Cipher is persisted as its JSON form, so a stored value is either such a
// JSON object or plaintext. Use crypto.IsCipher to tell them apart.
type Cipher struct {
	// Alg identifies the AEAD and KDF that produced the envelope
	// (e.g. "xcha-argon2id13-1").
	Alg string `json:"alg"`

	// IV is the 24-byte XChaCha20 nonce.
	IV string `json:"iv"`

	// Salt is the KDF salt of the key the envelope was sealed with.
	Salt string `json:"salt"`

	// Cipher is the sealed payload including the Poly1305 tag.
	Cipher string `json:"cipher"`

	// Length is the plaintext length in bytes.
	Length int `json:"length"`

	// Format describes the encoding of Cipher. Always "base64".
	Format string `json:"format"`
}
