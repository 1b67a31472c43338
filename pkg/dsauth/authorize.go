package dsauth

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/oauth2"
)

// NewVerifier returns a fresh PKCE code verifier.
func NewVerifier() string {
	return oauth2.GenerateVerifier()
}

// AuthCodeURL builds the /oauth/auth redirect for the Authorization Code
// Grant with an S256 PKCE challenge derived from verifier.
func (c *Client) AuthCodeURL(state, verifier string, scopes []string) string {
	opts := []oauth2.AuthCodeOption{}
	if verifier != "" {
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}
	return c.oauthConfig(scopes).AuthCodeURL(state, opts...)
}

// ExchangeCode trades an authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, code, verifier string) (*TokenResponse, error) {
	opts := []oauth2.AuthCodeOption{}
	if verifier != "" {
		opts = append(opts, oauth2.VerifierOption(verifier))
	}

	tok, err := c.oauthConfig(nil).Exchange(c.oauthContext(ctx), code, opts...)
	if err != nil {
		return nil, fromRetrieveError(err)
	}
	return fromOAuth2Token(tok), nil
}

// Refresh uses a refresh token to obtain a new access token. The refresh
// token is carried over when the server does not rotate it.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	src := c.oauthConfig(nil).TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, fromRetrieveError(err)
	}
	return fromOAuth2Token(tok), nil
}

// ConsentURL is where a user grants the integration permission to
// impersonate them. "impersonation" is added to scopes when missing.
func (c *Client) ConsentURL(state string, scopes []string) string {
	if !slices.Contains(scopes, ScopeImpersonation) {
		scopes = append(slices.Clone(scopes), ScopeImpersonation)
	}

	q := url.Values{
		"response_type": {"code"},
		"scope":         {strings.Join(scopes, " ")},
		"client_id":     {c.ClientID},
		"redirect_uri":  {c.RedirectURL},
	}
	if state != "" {
		q.Set("state", state)
	}
	return c.url("/oauth/auth") + "?" + q.Encode()
}

func fromOAuth2Token(tok *oauth2.Token) *TokenResponse {
	resp := &TokenResponse{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}
	if !tok.Expiry.IsZero() {
		resp.ExpiresIn = int(timeUntil(tok.Expiry).Seconds())
	}
	if s, ok := tok.Extra("scope").(string); ok {
		resp.Scope = s
	}
	return resp
}
