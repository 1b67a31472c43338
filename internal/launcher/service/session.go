package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/store"
	"github.com/aussiebroadwan/dslauncher/pkg/cryptox"
)

// SessionService persists browser sessions. The browser holds a random
// token; the database only sees its fingerprint and sealed credentials.
type SessionService struct {
	Store  store.Store
	Sealer *cryptox.Sealer
	TTL    time.Duration
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

// Create starts an empty session and returns it with the cookie token.
func (s *SessionService) Create(ctx context.Context) (*domain.Session, string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now()
	sess := &domain.Session{
		ID:        cryptox.FingerprintToken(token),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	}
	if err := s.Store.Sessions().CreateSession(ctx, domain.SessionRecord{Session: *sess}); err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	return sess, token, nil
}

// Load returns the session for a cookie token, or ErrNoSession.
func (s *SessionService) Load(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	rec, err := s.Store.Sessions().GetSession(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	if !time.Now().Before(rec.ExpiresAt) {
		return nil, ErrNoSession
	}

	sess := rec.Session
	if sess.AccessToken, err = s.Sealer.OpenString(rec.SealedAccessToken); err != nil {
		return nil, fmt.Errorf("open access token: %w", err)
	}
	if sess.RefreshToken, err = s.Sealer.OpenString(rec.SealedRefreshToken); err != nil {
		return nil, fmt.Errorf("open refresh token: %w", err)
	}
	return &sess, nil
}

// Save seals the credentials and slides the expiry forward.
func (s *SessionService) Save(ctx context.Context, sess *domain.Session) error {
	rec := domain.SessionRecord{Session: *sess}
	rec.AccessToken, rec.RefreshToken = "", ""

	var err error
	if rec.SealedAccessToken, err = s.Sealer.SealString(sess.AccessToken); err != nil {
		return fmt.Errorf("seal access token: %w", err)
	}
	if rec.SealedRefreshToken, err = s.Sealer.SealString(sess.RefreshToken); err != nil {
		return fmt.Errorf("seal refresh token: %w", err)
	}

	now := time.Now()
	rec.UpdatedAt = now
	rec.ExpiresAt = now.Add(s.ttl())

	if err := s.Store.Sessions().UpdateSession(ctx, rec); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	sess.UpdatedAt, sess.ExpiresAt = rec.UpdatedAt, rec.ExpiresAt
	return nil
}

func (s *SessionService) Delete(ctx context.Context, sess *domain.Session) error {
	err := s.Store.Sessions().DeleteSession(ctx, sess.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
