package jwtx

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidPEM = errors.New("jwtx: invalid PEM for RSA key")

// RS256Signer signs with RSA SHA-256.
type RS256Signer struct {
	kid string
	key *rsa.PrivateKey
}

// newRS256Signer accepts both PKCS1 ("RSA PRIVATE KEY") and PKCS8
// ("PRIVATE KEY") blocks. The DocuSign console generates PKCS1.
func newRS256Signer(kid string, pemKey []byte) (*RS256Signer, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, ErrInvalidPEM
	}

	var key *rsa.PrivateKey
	switch block.Type {
	case "RSA PRIVATE KEY":
		k, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("jwtx: parse PKCS1: %w", err)
		}
		key = k
	case "PRIVATE KEY":
		k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
		}
		rk, ok := k.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("jwtx: not an RSA private key")
		}
		key = rk
	default:
		return nil, fmt.Errorf("jwtx: unsupported PEM type %q", block.Type)
	}

	return &RS256Signer{kid: kid, key: key}, nil
}

// LoadSignerRS256 reads a PEM key file from disk.
func LoadSignerRS256(path string) (Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jwtx: read private key: %w", err)
	}
	return newRS256Signer("", data)
}

func (s *RS256Signer) Alg() string { return jwt.SigningMethodRS256.Alg() }

// Sign serialises and signs claims.
func (s *RS256Signer) Sign(claims jwt.Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if s.kid != "" {
		t.Header["kid"] = s.kid
	}
	return t.SignedString(s.key)
}

// PublicKey exposes the verifying half, mostly for tests and fake servers.
func (s *RS256Signer) PublicKey() *rsa.PublicKey { return &s.key.PublicKey }

func (s *RS256Signer) Validate() error {
	if s.key == nil {
		return errors.New("jwtx: nil RSA key")
	}
	return s.key.Validate()
}
