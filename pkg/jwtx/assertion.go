package jwtx

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAssertionLifetime is how long a JWT grant assertion stays valid.
// DocuSign rejects assertions living longer than an hour; ten minutes is
// what the account server documentation uses.
const DefaultAssertionLifetime = 10 * time.Minute

// AssertionParams describe a JWT bearer grant (RFC 7523) assertion.
type AssertionParams struct {
	IntegrationKey string // iss
	UserID         string // sub, the impersonated user GUID
	Audience       string // OAuth host without scheme, e.g. account-d.docusign.com
	Scopes         []string
	Lifetime       time.Duration
	Now            time.Time
}

// NewAssertionClaims builds the claim set. MapClaims is used so "aud" is
// serialised as a bare string, which the account server requires.
func NewAssertionClaims(p AssertionParams) jwt.MapClaims {
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}
	life := p.Lifetime
	if life <= 0 {
		life = DefaultAssertionLifetime
	}

	claims := jwt.MapClaims{
		"iss":   p.IntegrationKey,
		"aud":   p.Audience,
		"iat":   now.Unix(),
		"exp":   now.Add(life).Unix(),
		"scope": strings.Join(p.Scopes, " "),
	}
	if p.UserID != "" {
		claims["sub"] = p.UserID
	}
	return claims
}
