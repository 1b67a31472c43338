package domain

import "time"

// AuthRequest is a pending login, created before redirecting to DocuSign and
// consumed exactly once by the callback.
type AuthRequest struct {
	ID        string
	StateHash string // fingerprint of the OAuth state parameter
	SessionID string
	AuthType  AuthType
	Verifier  string // PKCE code verifier, empty for JWT consent
	ReturnTo  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (r *AuthRequest) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
