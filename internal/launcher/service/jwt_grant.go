package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
	"github.com/aussiebroadwan/dslauncher/pkg/jwtx"
	"github.com/aussiebroadwan/dslauncher/pkg/slogx"
)

// JWTGrant impersonates a fixed DocuSign user with an RSA signed assertion.
// When the user has not consented yet, login falls back to the consent page
// and the callback retries the grant.
type JWTGrant struct {
	grantBase

	Signer        jwtx.Signer
	ImpersonateID string // user GUID
	Lifetime      time.Duration
}

func NewJWTGrant(
	client *dsauth.Client,
	pending *PendingRequests,
	signer jwtx.Signer,
	impersonateID string,
	scopes []string,
	targetAccountID string,
	metrics *Metrics,
) *JWTGrant {
	if !slices.Contains(scopes, dsauth.ScopeImpersonation) {
		scopes = append(slices.Clone(scopes), dsauth.ScopeImpersonation)
	}
	return &JWTGrant{
		grantBase: grantBase{
			Client:          client,
			Scopes:          scopes,
			TargetAccountID: targetAccountID,
			Pending:         pending,
			Metrics:         metrics,
		},
		Signer:        signer,
		ImpersonateID: impersonateID,
		Lifetime:      JWTLife,
	}
}

func (g *JWTGrant) Kind() domain.AuthType { return domain.AuthTypeJWT }

func (g *JWTGrant) Login(ctx context.Context, sess *domain.Session, returnTo string) (LoginResult, error) {
	if g.alreadyAuthenticated(sess, domain.AuthTypeJWT) {
		return LoginResult{RedirectURL: returnTo, Authenticated: true}, nil
	}

	sess.ClearCredentials()
	sess.AuthType = domain.AuthTypeJWT

	err := g.acquire(ctx, sess)
	if errors.Is(err, dsauth.ErrConsentRequired) {
		slogx.FromContext(ctx).Info("jwt grant needs consent", "user_id", g.ImpersonateID)

		state, err := g.Pending.Create(ctx, sess, domain.AuthTypeJWT, "", returnTo)
		if err != nil {
			return LoginResult{}, err
		}
		return LoginResult{RedirectURL: g.Client.ConsentURL(state, g.Scopes), ConsentRequired: true}, nil
	}
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{RedirectURL: returnTo, Authenticated: true}, nil
}

// Callback runs after the consent page. The authorization code is not
// needed; consent is now on record, so the grant is simply retried.
func (g *JWTGrant) Callback(ctx context.Context, sess *domain.Session, state, _ string) (string, error) {
	req, err := g.Pending.Consume(ctx, sess, domain.AuthTypeJWT, state)
	if err != nil {
		return "", err
	}
	if err := g.acquire(ctx, sess); err != nil {
		return "", err
	}
	return req.ReturnTo, nil
}

// Refresh requests a new assertion grant. JWT grants never carry a refresh
// token.
func (g *JWTGrant) Refresh(ctx context.Context, sess *domain.Session) error {
	tok, err := g.requestToken(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReauthenticate, err)
	}
	applyToken(sess, tok)
	return nil
}

func (g *JWTGrant) acquire(ctx context.Context, sess *domain.Session) error {
	tok, err := g.requestToken(ctx)
	if err != nil {
		return err
	}
	return g.establish(ctx, sess, tok)
}

func (g *JWTGrant) requestToken(ctx context.Context) (*dsauth.TokenResponse, error) {
	tok, err := g.Client.JWTUserToken(ctx, g.Signer, g.ImpersonateID, g.Scopes, g.Lifetime)
	g.Metrics.observeToken("jwt_bearer", err)
	return tok, err
}
