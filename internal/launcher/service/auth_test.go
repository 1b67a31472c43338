package service_test

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/service"
	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
	"github.com/stretchr/testify/require"
)

func TestSelectAccount(t *testing.T) {
	info := &dsauth.UserInfo{Accounts: []dsauth.AccountInfo{
		{AccountID: "a1"},
		{AccountID: "a2", IsDefault: true},
	}}

	acct, err := service.SelectAccount(info, "")
	require.NoError(t, err)
	require.Equal(t, "a2", acct.AccountID)

	acct, err = service.SelectAccount(info, "a1")
	require.NoError(t, err)
	require.Equal(t, "a1", acct.AccountID)

	_, err = service.SelectAccount(info, "a3")
	require.ErrorIs(t, err, service.ErrTargetAccountNotFound)

	_, err = service.SelectAccount(&dsauth.UserInfo{Accounts: []dsauth.AccountInfo{{AccountID: "a1"}}}, "")
	require.ErrorIs(t, err, service.ErrNoDefaultAccount)
}

func TestAuthCodeGrantFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sess := e.newSession(t)

	res, err := e.auth.Login(ctx, sess, domain.AuthTypeCode, "/after")
	require.NoError(t, err)
	require.Equal(t, domain.AuthTypeCode, sess.AuthType)

	u, err := url.Parse(res.RedirectURL)
	require.NoError(t, err)
	require.Equal(t, "signature click.manage click.send", u.Query().Get("scope"))
	require.Equal(t, "S256", u.Query().Get("code_challenge_method"))

	code, state, err := e.ds.Authorize(res.RedirectURL, userGUID)
	require.NoError(t, err)

	returnTo, err := e.auth.Callback(ctx, sess, state, code, "", "")
	require.NoError(t, err)
	require.Equal(t, "/after", returnTo)

	require.Equal(t, userGUID, sess.UserID)
	require.Equal(t, "Ann Example", sess.UserName)
	require.Equal(t, accountID, sess.AccountID)
	require.Equal(t, e.api.URL, sess.BaseURI)
	require.NotEmpty(t, sess.RefreshToken)
	require.True(t, e.code.CheckToken(sess, service.TokenReplaceMin))

	t.Run("state is single use", func(t *testing.T) {
		_, err := e.auth.Callback(ctx, sess, state, code, "", "")
		require.ErrorIs(t, err, service.ErrInvalidState)
	})

	t.Run("login again short circuits", func(t *testing.T) {
		res, err := e.auth.Login(ctx, sess, domain.AuthTypeCode, "/again")
		require.NoError(t, err)
		require.True(t, res.Authenticated)
		require.Equal(t, "/again", res.RedirectURL)
	})

	require.Contains(t, e.scrape(t), `dslauncher_token_requests_total{grant="authorization_code",outcome="ok"} 1`)
}

func TestCallbackRejectsForeignSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	victim := e.newSession(t)
	attacker := e.newSession(t)

	res, err := e.auth.Login(ctx, attacker, domain.AuthTypeCode, "/")
	require.NoError(t, err)
	code, state, err := e.ds.Authorize(res.RedirectURL, userGUID)
	require.NoError(t, err)

	victim.AuthType = domain.AuthTypeCode
	_, err = e.auth.Callback(ctx, victim, state, code, "", "")
	require.ErrorIs(t, err, service.ErrInvalidState)
	require.Empty(t, victim.AccessToken)
}

func TestCallbackWithoutLogin(t *testing.T) {
	e := newEnv(t)
	_, err := e.auth.Callback(context.Background(), e.newSession(t), "state", "code", "", "")
	require.ErrorIs(t, err, service.ErrInvalidState)
}

func TestCallbackAccessDenied(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sess := e.newSession(t)

	res, err := e.auth.Login(ctx, sess, domain.AuthTypeCode, "/")
	require.NoError(t, err)
	_, state, err := e.ds.Authorize(res.RedirectURL, userGUID)
	require.NoError(t, err)

	_, err = e.auth.Callback(ctx, sess, state, "", dsauth.ErrorCodeAccessDenied, "user said no")
	require.ErrorIs(t, err, dsauth.ErrAccessDenied)

	// The state was burned.
	_, err = e.auth.Callback(ctx, sess, state, "code", "", "")
	require.ErrorIs(t, err, service.ErrInvalidState)
}

func TestExpiredAuthRequest(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sess := e.newSession(t)

	short := &service.PendingRequests{Store: e.store, TTL: time.Nanosecond}
	state, err := short.Create(ctx, sess, domain.AuthTypeCode, "v", "/")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	_, err = e.pending.Consume(ctx, sess, domain.AuthTypeCode, state)
	require.ErrorIs(t, err, service.ErrInvalidState)
}

func TestUnknownAuthType(t *testing.T) {
	e := newEnv(t)
	_, err := e.auth.Login(context.Background(), e.newSession(t), domain.AuthType("saml"), "/")
	require.ErrorIs(t, err, service.ErrUnknownAuthType)

	require.Equal(t, []domain.AuthType{domain.AuthTypeCode, domain.AuthTypeJWT}, e.auth.AuthTypes())
}

func TestAuthTypesKeepRegistrationOrder(t *testing.T) {
	e := newEnv(t)

	auth := service.NewAuthService(e.pending, quietLogger(), e.jwt, e.code)
	require.Equal(t, []domain.AuthType{domain.AuthTypeJWT, domain.AuthTypeCode}, auth.AuthTypes())

	auth = service.NewAuthService(e.pending, quietLogger(), e.jwt)
	require.Equal(t, []domain.AuthType{domain.AuthTypeJWT}, auth.AuthTypes())
}

func TestRequireTokenRefreshes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sess := e.newSession(t)
	e.loginWithCode(t, sess)

	before := sess.AccessToken
	soon := time.Now().Add(time.Minute)
	sess.TokenExpiresAt = &soon

	require.NoError(t, e.auth.RequireToken(ctx, sess, service.MinimumBuffer))
	require.NotEqual(t, before, sess.AccessToken)
	require.Equal(t, 1, e.ds.Grants("refresh_token"))
	require.Equal(t, accountID, sess.AccountID, "account survives refresh")

	t.Run("without refresh token", func(t *testing.T) {
		sess.RefreshToken = ""
		sess.TokenExpiresAt = &soon
		require.ErrorIs(t, e.auth.RequireToken(ctx, sess, service.MinimumBuffer), service.ErrReauthenticate)
	})

	t.Run("without any token", func(t *testing.T) {
		empty := e.newSession(t)
		require.ErrorIs(t, e.auth.RequireToken(ctx, empty, service.MinimumBuffer), service.ErrReauthenticate)
	})
}

func TestJWTGrantConsentFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sess := e.newSession(t)

	res, err := e.auth.Login(ctx, sess, domain.AuthTypeJWT, "/examples")
	require.NoError(t, err)
	require.True(t, res.ConsentRequired)
	require.False(t, res.Authenticated)

	u, err := url.Parse(res.RedirectURL)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(u.Query().Get("scope"), "impersonation"))
	require.Equal(t, redirect, u.Query().Get("redirect_uri"))

	// The user consents on the DocuSign page and is redirected back.
	code, state, err := e.ds.Authorize(res.RedirectURL, userGUID)
	require.NoError(t, err)

	returnTo, err := e.auth.Callback(ctx, sess, state, code, "", "")
	require.NoError(t, err)
	require.Equal(t, "/examples", returnTo)
	require.Equal(t, domain.AuthTypeJWT, sess.AuthType)
	require.Equal(t, accountID, sess.AccountID)
	require.Empty(t, sess.RefreshToken)
	require.Equal(t, 1, e.ds.Grants(dsauth.GrantTypeJWTBearer))

	out := e.scrape(t)
	require.Contains(t, out, `dslauncher_token_requests_total{grant="jwt_bearer",outcome="consent_required"} 1`)
	require.Contains(t, out, `dslauncher_token_requests_total{grant="jwt_bearer",outcome="ok"} 1`)
}

func TestJWTGrantWithConsent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.ds.GrantConsent(userGUID)
	sess := e.newSession(t)

	res, err := e.auth.Login(ctx, sess, domain.AuthTypeJWT, "/examples")
	require.NoError(t, err)
	require.True(t, res.Authenticated)
	require.Equal(t, "/examples", res.RedirectURL)
	require.True(t, sess.CheckToken(service.TokenReplaceMin))

	// Refreshing a JWT session re-runs the grant.
	soon := time.Now().Add(time.Minute)
	sess.TokenExpiresAt = &soon
	require.NoError(t, e.auth.RequireToken(ctx, sess, service.MinimumBuffer))
	require.Equal(t, 2, e.ds.Grants(dsauth.GrantTypeJWTBearer))
}

func TestTargetAccountNotFound(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.ds.GrantConsent(userGUID)

	e.jwt.TargetAccountID = "acc-missing"
	_, err := e.auth.Login(ctx, e.newSession(t), domain.AuthTypeJWT, "/")
	require.ErrorIs(t, err, service.ErrTargetAccountNotFound)

	e.jwt.TargetAccountID = "acc-other"
	sess := e.newSession(t)
	_, err = e.auth.Login(ctx, sess, domain.AuthTypeJWT, "/")
	require.NoError(t, err)
	require.Equal(t, "acc-other", sess.AccountID)
}

func TestLogout(t *testing.T) {
	e := newEnv(t)
	sess := e.newSession(t)
	e.loginWithCode(t, sess)

	require.NoError(t, e.auth.Logout(context.Background(), sess))
	require.Empty(t, sess.AccessToken)
	require.Empty(t, sess.AccountID)
	require.Empty(t, sess.AuthType)
}
