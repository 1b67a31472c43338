package domain

import (
	"strings"
	"time"
)

// AuthType selects which DocuSign grant a session uses.
type AuthType string

const (
	AuthTypeCode AuthType = "code" // Authorization Code Grant
	AuthTypeJWT  AuthType = "jwt"  // JWT Grant (impersonation)
)

func (t AuthType) Valid() bool {
	return t == AuthTypeCode || t == AuthTypeJWT
}

// ParseAuthType accepts the short names plus the long forms the login page
// historically used.
func ParseAuthType(s string) (AuthType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "code", "code_grant", "authorization_code":
		return AuthTypeCode, true
	case "jwt", "jwt_grant", "jwt-bearer":
		return AuthTypeJWT, true
	}
	return "", false
}

// TokenState is where a session's access token sits in its lifecycle.
type TokenState string

const (
	TokenNone     TokenState = "none"
	TokenValid    TokenState = "valid"
	TokenExpiring TokenState = "expiring"
)

// Session is one browser's DocuSign login. ID is the fingerprint of the
// cookie token, never the token itself.
type Session struct {
	ID       string
	AuthType AuthType

	AccessToken    string
	RefreshToken   string
	TokenExpiresAt *time.Time

	UserID    string
	UserName  string
	UserEmail string

	AccountID   string
	AccountName string
	BaseURI     string // account base_uri, e.g. https://demo.docusign.net

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// TokenStateAt classifies the access token. A token is expiring once
// now+buffer reaches its expiry.
func (s *Session) TokenStateAt(now time.Time, buffer time.Duration) TokenState {
	if s.AccessToken == "" || s.TokenExpiresAt == nil {
		return TokenNone
	}
	if now.Add(buffer).Before(*s.TokenExpiresAt) {
		return TokenValid
	}
	return TokenExpiring
}

// CheckToken reports whether the access token is usable for at least buffer.
func (s *Session) CheckToken(buffer time.Duration) bool {
	return s.TokenStateAt(time.Now(), buffer) == TokenValid
}

// HasAccount reports whether account discovery has completed.
func (s *Session) HasAccount() bool {
	return s.AccountID != "" && s.BaseURI != ""
}

// ESignBasePath is the eSignature REST base for the selected account.
func (s *Session) ESignBasePath() string {
	if s.BaseURI == "" {
		return ""
	}
	return strings.TrimSuffix(s.BaseURI, "/") + "/restapi"
}

// ClearCredentials drops tokens, identity and account. The session row
// itself survives so the browser keeps its cookie.
func (s *Session) ClearCredentials() {
	s.AuthType = ""
	s.AccessToken = ""
	s.RefreshToken = ""
	s.TokenExpiresAt = nil
	s.UserID = ""
	s.UserName = ""
	s.UserEmail = ""
	s.AccountID = ""
	s.AccountName = ""
	s.BaseURI = ""
}

// SessionRecord is a Session as persisted, with credentials sealed.
type SessionRecord struct {
	Session
	SealedAccessToken  []byte
	SealedRefreshToken []byte
}
