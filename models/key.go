// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
)

// ErrUnknownKeyShape is returned when a stored wrapped key is neither a
// cipher envelope nor a {public, private} pair.
var ErrUnknownKeyShape = errors.New("unknown wrapped key shape")

// Key is a symmetric key together with the salt it was derived with.
// Key holds base64 key bytes; Salt holds base64 salt bytes.
type Key struct {
	Key  string `json:"key"`
	Salt string `json:"salt"`
}

// KeyPair is an asymmetric (curve25519) key pair, both halves base64.
type KeyPair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// KeyKind discriminates the two shapes of an application key.
type KeyKind int

const (
	// KeySymmetric marks a single symmetric key.
	KeySymmetric KeyKind = iota + 1
	// KeyAsymmetric marks a public/private key pair.
	KeyAsymmetric
)

// String implements fmt.Stringer.
func (k KeyKind) String() string {
	switch k {
	case KeySymmetric:
		return "symmetric"
	case KeyAsymmetric:
		return "asymmetric"
	default:
		return "unknown"
	}
}

// WrappedPair is the stored form of an asymmetric key: the public half in
// plaintext, the private half sealed under the master key.
type WrappedPair struct {
	Public  string `json:"public"`
	Private Cipher `json:"private"`
}

// WrappedKey is the stored form of an application key:
// Symmetric(Cipher) | Asymmetric{Public, Private Cipher}.
//
// On the wire a symmetric key is the bare cipher object and an asymmetric key
// is {"public": ..., "private": {...}}.
type WrappedKey struct {
	Kind      KeyKind
	Symmetric *Cipher
	Pair      *WrappedPair
}

// NewWrappedSymmetric builds the symmetric variant.
func NewWrappedSymmetric(c Cipher) *WrappedKey {
	return &WrappedKey{Kind: KeySymmetric, Symmetric: &c}
}

// NewWrappedPair builds the asymmetric variant.
func NewWrappedPair(public string, private Cipher) *WrappedKey {
	return &WrappedKey{Kind: KeyAsymmetric, Pair: &WrappedPair{Public: public, Private: private}}
}

// MarshalJSON implements json.Marshaler.
func (w WrappedKey) MarshalJSON() ([]byte, error) {
	switch w.Kind {
	case KeySymmetric:
		if w.Symmetric == nil {
			return nil, ErrUnknownKeyShape
		}
		return json.Marshal(w.Symmetric)
	case KeyAsymmetric:
		if w.Pair == nil {
			return nil, ErrUnknownKeyShape
		}
		return json.Marshal(w.Pair)
	default:
		return nil, ErrUnknownKeyShape
	}
}

// UnmarshalJSON implements json.Unmarshaler. The shape is decided once here;
// everything past decoding switches on Kind.
func (w *WrappedKey) UnmarshalJSON(b []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}

	if _, ok := probe["private"]; ok {
		var pair WrappedPair
		if err := json.Unmarshal(b, &pair); err != nil {
			return err
		}
		*w = WrappedKey{Kind: KeyAsymmetric, Pair: &pair}
		return nil
	}

	if _, ok := probe["cipher"]; ok {
		var c Cipher
		if err := json.Unmarshal(b, &c); err != nil {
			return err
		}
		*w = WrappedKey{Kind: KeySymmetric, Symmetric: &c}
		return nil
	}

	return ErrUnknownKeyShape
}

// UnwrappedKey is the in-memory form of an application key:
// Symmetric(Key) | Asymmetric(KeyPair). It must never be persisted.
type UnwrappedKey struct {
	Kind      KeyKind
	Symmetric *Key
	Pair      *KeyPair
}

// NewSymmetricKey builds the symmetric variant.
func NewSymmetricKey(k Key) *UnwrappedKey {
	return &UnwrappedKey{Kind: KeySymmetric, Symmetric: &k}
}

// NewAsymmetricKey builds the asymmetric variant.
func NewAsymmetricKey(p KeyPair) *UnwrappedKey {
	return &UnwrappedKey{Kind: KeyAsymmetric, Pair: &p}
}
