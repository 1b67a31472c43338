package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// sealerInfo binds derived keys to this use so the master secret can be
// shared with other purposes without key reuse.
const sealerInfo = "dslauncher session token sealing v1"

var ErrCiphertextTooShort = errors.New("cryptox: ciphertext too short")

// Sealer encrypts small secrets (OAuth tokens) with AES-256-GCM.
// Output layout: [nonce][ciphertext+tag].
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives an AES-256 key from secret with HKDF-SHA256.
func NewSealer(secret []byte) (*Sealer, error) {
	if len(secret) == 0 {
		return nil, errors.New("cryptox: empty sealing secret")
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(sealerInfo)), key); err != nil {
		return nil, fmt.Errorf("cryptox: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: new gcm: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// LoadSealer reads the master secret from path, or from envKey when path is
// empty. With neither set it generates an ephemeral secret; the returned
// bool reports that case so callers can warn that sessions will not survive
// a restart.
func LoadSealer(path, envKey string) (*Sealer, bool, error) {
	var secret []byte
	ephemeral := false

	switch {
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("cryptox: read master key: %w", err)
		}
		secret = []byte(strings.TrimSpace(string(data)))
	case os.Getenv(envKey) != "":
		secret = []byte(os.Getenv(envKey))
	default:
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, false, fmt.Errorf("cryptox: generate master key: %w", err)
		}
		ephemeral = true
	}

	s, err := NewSealer(secret)
	return s, ephemeral, err
}

// Seal encrypts plaintext with a fresh random nonce.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal and authenticates the ciphertext.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n {
		return nil, ErrCiphertextTooShort
	}
	plaintext, err := s.aead.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: open: %w", err)
	}
	return plaintext, nil
}

// SealString is Seal for strings; the empty string seals to nil.
func (s *Sealer) SealString(v string) ([]byte, error) {
	if v == "" {
		return nil, nil
	}
	return s.Seal([]byte(v))
}

// OpenString is Open for strings; nil opens to the empty string.
func (s *Sealer) OpenString(sealed []byte) (string, error) {
	if len(sealed) == 0 {
		return "", nil
	}
	b, err := s.Open(sealed)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
