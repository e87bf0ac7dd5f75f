package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/MKhiriev/notevault/models"
)

// testParams keeps Argon2id cheap enough for unit tests.
var testParams = Params{Time: 1, Memory: 8 * 1024, Threads: 1}

func newTestProvider() Provider {
	return NewProvider(testParams)
}

func TestNewProvider_ZeroParamsFallBackToDefaults(t *testing.T) {
	p := NewProvider(Params{}).(*provider)

	if p.params != DefaultParams() {
		t.Fatalf("params = %+v, want %+v", p.params, DefaultParams())
	}
}

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	svc := newTestProvider()

	s1, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	s2, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}

	if len(s1) != saltSize || len(s2) != saltSize {
		t.Fatalf("salt lengths = %d/%d, want %d", len(s1), len(s2), saltSize)
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	svc := newTestProvider()
	salt := bytes.Repeat([]byte{0xAB}, 16)

	k1, err := svc.DeriveKey("correct horse battery staple", salt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}
	k2, err := svc.DeriveKey("correct horse battery staple", salt)
	if err != nil {
		t.Fatalf("DeriveKey error: %v", err)
	}

	if k1 != k2 {
		t.Fatalf("expected keys to match for same password+salt")
	}
	raw, _ := base64.StdEncoding.DecodeString(k1.Key)
	if len(raw) != keySize {
		t.Fatalf("key length = %d, want %d", len(raw), keySize)
	}
}

func TestDeriveKey_DifferentSaltProducesDifferentKey(t *testing.T) {
	svc := newTestProvider()

	k1, _ := svc.DeriveKey("same password", bytes.Repeat([]byte{0x01}, 16))
	k2, _ := svc.DeriveKey("same password", bytes.Repeat([]byte{0x02}, 16))

	if k1.Key == k2.Key {
		t.Fatalf("expected different keys for different salts")
	}
}

func TestDeriveKey_EmptySalt(t *testing.T) {
	_, err := newTestProvider().DeriveKey("pw", nil)
	if !errors.Is(err, ErrInvalidSalt) {
		t.Fatalf("expected ErrInvalidSalt, got %v", err)
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	svc := newTestProvider()
	key, err := svc.GenerateRandomKey()
	if err != nil {
		t.Fatalf("GenerateRandomKey error: %v", err)
	}

	plain := []byte("<p>meeting notes</p>")
	c, err := svc.Encrypt(key, plain)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if c.Alg != Algorithm || c.Format != formatBase64 || c.Length != len(plain) {
		t.Fatalf("unexpected envelope header: %+v", c)
	}
	if c.Salt != key.Salt {
		t.Fatalf("envelope salt = %q, want key salt %q", c.Salt, key.Salt)
	}

	got, err := svc.Decrypt(key, c)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Fatalf("round trip mismatch: got %q", got)
	}
}

func TestEncrypt_NonceRandomness(t *testing.T) {
	svc := newTestProvider()
	key, _ := svc.GenerateRandomKey()

	c1, _ := svc.Encrypt(key, []byte("same"))
	c2, _ := svc.Encrypt(key, []byte("same"))

	if c1.IV == c2.IV {
		t.Fatalf("expected different nonces for two encryptions")
	}
	if c1.Cipher == c2.Cipher {
		t.Fatalf("expected different ciphertexts for two encryptions")
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	svc := newTestProvider()
	k1, _ := svc.GenerateRandomKey()
	k2, _ := svc.GenerateRandomKey()

	c, _ := svc.Encrypt(k1, []byte("secret"))

	_, err := svc.Decrypt(k2, c)
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestDecrypt_CorruptedEnvelopeLooksLikeWrongKey(t *testing.T) {
	svc := newTestProvider()
	key, _ := svc.GenerateRandomKey()
	c, _ := svc.Encrypt(key, []byte("secret"))

	raw, _ := base64.StdEncoding.DecodeString(c.Cipher)
	raw[0] ^= 0xFF
	c.Cipher = base64.StdEncoding.EncodeToString(raw)

	_, err := svc.Decrypt(key, c)
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}

	c.IV = "not base64!"
	_, err = svc.Decrypt(key, c)
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed for bad iv, got %v", err)
	}
}

func TestDecrypt_InvalidKey(t *testing.T) {
	svc := newTestProvider()
	key, _ := svc.GenerateRandomKey()
	c, _ := svc.Encrypt(key, []byte("x"))

	_, err := svc.Decrypt(models.Key{Key: "c2hvcnQ="}, c)
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestDecrypt_NotCipher(t *testing.T) {
	svc := newTestProvider()
	key, _ := svc.GenerateRandomKey()

	_, err := svc.Decrypt(key, models.Cipher{})
	if !errors.Is(err, ErrNotCipher) {
		t.Fatalf("expected ErrNotCipher, got %v", err)
	}
}

func TestPassword_RoundTripAndWrongPassword(t *testing.T) {
	svc := newTestProvider()

	c, err := svc.EncryptWithPassword("abc123", []byte("vault constant"))
	if err != nil {
		t.Fatalf("EncryptWithPassword error: %v", err)
	}

	got, err := svc.DecryptWithPassword("abc123", c)
	if err != nil {
		t.Fatalf("DecryptWithPassword error: %v", err)
	}
	if string(got) != "vault constant" {
		t.Fatalf("got %q", got)
	}

	for _, wrong := range []string{"", "wrong", "abc1234", "ABC123"} {
		if _, err = svc.DecryptWithPassword(wrong, c); !errors.Is(err, ErrDecryptionFailed) {
			t.Fatalf("password %q: expected ErrDecryptionFailed, got %v", wrong, err)
		}
	}
}

func TestEncryptWithPassword_FreshSaltEveryTime(t *testing.T) {
	svc := newTestProvider()

	c1, _ := svc.EncryptWithPassword("pw", []byte("x"))
	c2, _ := svc.EncryptWithPassword("pw", []byte("x"))

	if c1.Salt == c2.Salt {
		t.Fatalf("expected different salts per envelope")
	}
}

func TestIsCipher(t *testing.T) {
	svc := newTestProvider()
	key, _ := svc.GenerateRandomKey()
	c, _ := svc.Encrypt(key, []byte("x"))
	stored, err := FormatCipher(c)
	if err != nil {
		t.Fatalf("FormatCipher error: %v", err)
	}

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"struct", c, true},
		{"pointer", &c, true},
		{"nil pointer", (*models.Cipher)(nil), false},
		{"json string", stored, true},
		{"json bytes", []byte(stored), true},
		{"plaintext", "<p>hello</p>", false},
		{"json but not a cipher", `{"type":"tiptap"}`, false},
		{"foreign alg", `{"alg":"aes","iv":"a","salt":"b","cipher":"c"}`, false},
		{"empty struct", models.Cipher{}, false},
		{"other type", 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.IsCipher(tt.value); got != tt.want {
				t.Fatalf("IsCipher(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestGenerateKeyPair(t *testing.T) {
	svc := newTestProvider()

	p1, err := svc.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair error: %v", err)
	}
	p2, _ := svc.GenerateKeyPair()

	pub, _ := base64.StdEncoding.DecodeString(p1.PublicKey)
	priv, _ := base64.StdEncoding.DecodeString(p1.PrivateKey)
	if len(pub) != 32 || len(priv) != 32 {
		t.Fatalf("unexpected key lengths %d/%d", len(pub), len(priv))
	}
	if p1 == p2 {
		t.Fatalf("expected distinct key pairs")
	}
}
