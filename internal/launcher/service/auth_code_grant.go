package service

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
)

// AuthCodeGrant implements the Authorization Code Grant with PKCE.
type AuthCodeGrant struct {
	grantBase
}

func NewAuthCodeGrant(client *dsauth.Client, pending *PendingRequests, scopes []string, targetAccountID string, metrics *Metrics) *AuthCodeGrant {
	return &AuthCodeGrant{grantBase{
		Client:          client,
		Scopes:          scopes,
		TargetAccountID: targetAccountID,
		Pending:         pending,
		Metrics:         metrics,
	}}
}

func (g *AuthCodeGrant) Kind() domain.AuthType { return domain.AuthTypeCode }

func (g *AuthCodeGrant) Login(ctx context.Context, sess *domain.Session, returnTo string) (LoginResult, error) {
	if g.alreadyAuthenticated(sess, domain.AuthTypeCode) {
		return LoginResult{RedirectURL: returnTo, Authenticated: true}, nil
	}

	sess.ClearCredentials()
	sess.AuthType = domain.AuthTypeCode

	verifier := dsauth.NewVerifier()
	state, err := g.Pending.Create(ctx, sess, domain.AuthTypeCode, verifier, returnTo)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{RedirectURL: g.Client.AuthCodeURL(state, verifier, g.Scopes)}, nil
}

func (g *AuthCodeGrant) Callback(ctx context.Context, sess *domain.Session, state, code string) (string, error) {
	req, err := g.Pending.Consume(ctx, sess, domain.AuthTypeCode, state)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", fmt.Errorf("%w: missing code", ErrInvalidState)
	}

	tok, err := g.Client.ExchangeCode(ctx, code, req.Verifier)
	g.Metrics.observeToken("authorization_code", err)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}

	if err := g.establish(ctx, sess, tok); err != nil {
		return "", err
	}
	return req.ReturnTo, nil
}

// Refresh uses the stored refresh token. The selected account is kept.
func (g *AuthCodeGrant) Refresh(ctx context.Context, sess *domain.Session) error {
	if sess.RefreshToken == "" {
		return fmt.Errorf("%w: no refresh token", ErrReauthenticate)
	}

	tok, err := g.Client.Refresh(ctx, sess.RefreshToken)
	g.Metrics.observeToken("refresh_token", err)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReauthenticate, err)
	}

	applyToken(sess, tok)
	return nil
}
