package jwtx

import "github.com/golang-jwt/jwt/v5"

// Signer signs JWT grant assertions.
type Signer interface {
	Alg() string
	Sign(claims jwt.Claims) (string, error)
	Validate() error
}

// NewSignerRS256 creates an RS256 signer from a PEM encoded RSA private key.
// kid may be empty; DocuSign does not require a key id header.
func NewSignerRS256(kid string, pemKey []byte) (Signer, error) {
	return newRS256Signer(kid, pemKey)
}
