// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/notevault/models"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/nacl/box"
)

const (
	// Algorithm tags every envelope produced by this package.
	Algorithm = "xcha-argon2id13-1"

	algorithmPrefix = "xcha-"
	formatBase64    = "base64"
	saltSize        = 16
	keySize         = chacha20poly1305.KeySize
)

// Params are the Argon2id cost parameters.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultParams returns the OWASP recommended Argon2id costs:
//   - time cost:   3 iterations
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func DefaultParams() Params {
	return Params{
		Time:    3,
		Memory:  64 * 1024,
		Threads: 4,
	}
}

// provider is the private implementation of [Provider].
type provider struct {
	params Params
	rand   io.Reader
}

// NewProvider constructs a [Provider] with the given Argon2id parameters.
// Zero fields fall back to [DefaultParams].
func NewProvider(params Params) Provider {
	def := DefaultParams()
	if params.Time == 0 {
		params.Time = def.Time
	}
	if params.Memory == 0 {
		params.Memory = def.Memory
	}
	if params.Threads == 0 {
		params.Threads = def.Threads
	}

	return &provider{params: params, rand: rand.Reader}
}

func (p *provider) GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(p.rand, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

func (p *provider) DeriveKey(password string, salt []byte) (models.Key, error) {
	if len(salt) == 0 {
		return models.Key{}, ErrInvalidSalt
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		p.params.Time,
		p.params.Memory,
		p.params.Threads,
		keySize,
	)

	return models.Key{
		Key:  base64.StdEncoding.EncodeToString(key),
		Salt: base64.StdEncoding.EncodeToString(salt),
	}, nil
}

func (p *provider) Encrypt(key models.Key, plaintext []byte) (models.Cipher, error) {
	raw, err := decodeKey(key)
	if err != nil {
		return models.Cipher{}, err
	}

	aead, err := chacha20poly1305.NewX(raw)
	if err != nil {
		return models.Cipher{}, fmt.Errorf("create aead: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err = io.ReadFull(p.rand, nonce); err != nil {
		return models.Cipher{}, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, []byte(Algorithm))

	return models.Cipher{
		Alg:    Algorithm,
		IV:     base64.StdEncoding.EncodeToString(nonce),
		Salt:   key.Salt,
		Cipher: base64.StdEncoding.EncodeToString(sealed),
		Length: len(plaintext),
		Format: formatBase64,
	}, nil
}

func (p *provider) Decrypt(key models.Key, c models.Cipher) ([]byte, error) {
	if !IsCipher(c) {
		return nil, ErrNotCipher
	}

	raw, err := decodeKey(key)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(raw)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(c.IV)
	if err != nil || len(nonce) != aead.NonceSize() {
		return nil, ErrDecryptionFailed
	}
	sealed, err := base64.StdEncoding.DecodeString(c.Cipher)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := aead.Open(nil, nonce, sealed, []byte(c.Alg))
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

func (p *provider) EncryptWithPassword(password string, plaintext []byte) (models.Cipher, error) {
	salt, err := p.GenerateSalt()
	if err != nil {
		return models.Cipher{}, err
	}

	key, err := p.DeriveKey(password, salt)
	if err != nil {
		return models.Cipher{}, err
	}

	return p.Encrypt(key, plaintext)
}

func (p *provider) DecryptWithPassword(password string, c models.Cipher) ([]byte, error) {
	if !IsCipher(c) {
		return nil, ErrNotCipher
	}

	salt, err := base64.StdEncoding.DecodeString(c.Salt)
	if err != nil || len(salt) == 0 {
		return nil, ErrDecryptionFailed
	}

	key, err := p.DeriveKey(password, salt)
	if err != nil {
		return nil, err
	}

	return p.Decrypt(key, c)
}

func (p *provider) IsCipher(value any) bool {
	return IsCipher(value)
}

func (p *provider) GenerateRandomKey() (models.Key, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(p.rand, key); err != nil {
		return models.Key{}, fmt.Errorf("generate key: %w", err)
	}

	salt, err := p.GenerateSalt()
	if err != nil {
		return models.Key{}, err
	}

	return models.Key{
		Key:  base64.StdEncoding.EncodeToString(key),
		Salt: base64.StdEncoding.EncodeToString(salt),
	}, nil
}

func (p *provider) GenerateKeyPair() (models.KeyPair, error) {
	public, private, err := box.GenerateKey(p.rand)
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("generate key pair: %w", err)
	}

	return models.KeyPair{
		PublicKey:  base64.StdEncoding.EncodeToString(public[:]),
		PrivateKey: base64.StdEncoding.EncodeToString(private[:]),
	}, nil
}

// IsCipher reports whether value is a cipher envelope. It accepts
// models.Cipher, *models.Cipher and the JSON form of a cipher as string or
// []byte. Anything else, including malformed JSON, is plaintext.
func IsCipher(value any) bool {
	switch v := value.(type) {
	case models.Cipher:
		return validCipher(v)
	case *models.Cipher:
		return v != nil && validCipher(*v)
	case string:
		_, err := ParseCipher(v)
		return err == nil
	case []byte:
		_, err := ParseCipher(string(v))
		return err == nil
	default:
		return false
	}
}

// ParseCipher decodes the stored JSON form of an envelope. It returns
// ErrNotCipher when s is plaintext.
func ParseCipher(s string) (models.Cipher, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return models.Cipher{}, ErrNotCipher
	}

	var c models.Cipher
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return models.Cipher{}, ErrNotCipher
	}
	if !validCipher(c) {
		return models.Cipher{}, ErrNotCipher
	}

	return c, nil
}

// FormatCipher returns the JSON form of c as stored in text columns.
func FormatCipher(c models.Cipher) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode cipher: %w", err)
	}
	return string(b), nil
}

func validCipher(c models.Cipher) bool {
	return strings.HasPrefix(c.Alg, algorithmPrefix) &&
		c.IV != "" &&
		c.Salt != "" &&
		c.Cipher != ""
}

func decodeKey(key models.Key) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(key.Key)
	if err != nil || len(raw) != keySize {
		return nil, ErrInvalidKey
	}
	return raw, nil
}
