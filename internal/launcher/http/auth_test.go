package http_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/dslauncher/pkg/launchersdk"
	"github.com/stretchr/testify/require"
)

func TestCodeGrantLogin(t *testing.T) {
	s := newTestServer(t)
	c := s.client()
	ctx := context.Background()

	sess, err := c.Session(ctx)
	require.NoError(t, err)
	require.False(t, sess.Authenticated)
	require.Equal(t, "none", sess.TokenState)

	s.loginWithCode(t, c)

	sess, err = c.Session(ctx)
	require.NoError(t, err)
	require.True(t, sess.Authenticated)
	require.Equal(t, "code", sess.AuthType)
	require.Equal(t, "valid", sess.TokenState)
	require.NotNil(t, sess.User)
	require.Equal(t, userGUID, sess.User.ID)
	require.NotNil(t, sess.Account)
	require.Equal(t, accountID, sess.Account.ID)
	require.Equal(t, s.api.URL, sess.Account.BaseURI)

	// A second login with a fresh token short circuits to return_to.
	loc, err := c.Login(ctx, "code", "/v1/examples")
	require.NoError(t, err)
	require.Equal(t, "/v1/examples", loc)
}

func TestSessionResponseHasNoTokens(t *testing.T) {
	s := newTestServer(t)
	c := s.client()
	s.loginWithCode(t, c)

	req, err := http.NewRequest(http.MethodGet, s.URL+"/v1/session", nil)
	require.NoError(t, err)
	resp, err := c.HTTPClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw := body(t, resp)
	require.NotContains(t, raw, "access_token")
	require.NotContains(t, raw, "refresh_token")
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestJWTGrantConsentFlow(t *testing.T) {
	s := newTestServer(t)
	c := s.client()
	ctx := context.Background()

	// No consent yet: the launcher sends the browser to the consent page.
	loc, err := c.Login(ctx, "jwt", "/v1/examples")
	require.NoError(t, err)
	require.Contains(t, loc, s.ds.URL+"/oauth/auth")
	require.Contains(t, loc, "impersonation")

	code, state, err := s.ds.Authorize(loc, userGUID)
	require.NoError(t, err)

	returnTo, err := c.Callback(ctx, code, state)
	require.NoError(t, err)
	require.Equal(t, "/v1/examples", returnTo)

	sess, err := c.Session(ctx)
	require.NoError(t, err)
	require.True(t, sess.Authenticated)
	require.Equal(t, "jwt", sess.AuthType)

	// Consent is remembered: a fresh browser logs in without a detour.
	other := s.client()
	loc, err = other.Login(ctx, "jwt", "/v1/session")
	require.NoError(t, err)
	require.Equal(t, "/v1/session", loc)
}

func TestCallbackErrors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	t.Run("unknown state", func(t *testing.T) {
		_, err := s.client().Callback(ctx, "code-1", "made-up")
		var lerr *launchersdk.Error
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, http.StatusBadRequest, lerr.StatusCode)
		require.Equal(t, launchersdk.CodeInvalidState, lerr.Code)
	})

	t.Run("access denied consumes the state", func(t *testing.T) {
		c := s.client()
		loc, err := c.Login(ctx, "code", "/")
		require.NoError(t, err)
		state := stateOf(t, loc)

		_, err = c.Deny(ctx, state, "access_denied")
		var lerr *launchersdk.Error
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, http.StatusForbidden, lerr.StatusCode)
		require.Equal(t, launchersdk.CodeAccessDenied, lerr.Code)

		_, err = c.Callback(ctx, "code-1", state)
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, http.StatusBadRequest, lerr.StatusCode)
	})

	t.Run("state belongs to another browser", func(t *testing.T) {
		victim := s.client()
		loc, err := victim.Login(ctx, "code", "/")
		require.NoError(t, err)
		code, state, err := s.ds.Authorize(loc, userGUID)
		require.NoError(t, err)

		_, err = s.client().Callback(ctx, code, state)
		var lerr *launchersdk.Error
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, launchersdk.CodeInvalidState, lerr.Code)
	})
}

func TestLoginRejectsForeignReturnTo(t *testing.T) {
	s := newTestServer(t)
	c := s.client()
	ctx := context.Background()

	loc, err := c.Login(ctx, "code", "https://evil.example/steal")
	require.NoError(t, err)
	code, state, err := s.ds.Authorize(loc, userGUID)
	require.NoError(t, err)

	returnTo, err := c.Callback(ctx, code, state)
	require.NoError(t, err)
	require.Equal(t, "/v1/session", returnTo)
}

func TestLoginAuthSelection(t *testing.T) {
	s := newTestServer(t)
	c := s.client()
	ctx := context.Background()

	loc, err := c.Redirect(ctx, "/ds/login?return_to=%2Fv1%2Fexamples")
	require.NoError(t, err)
	require.Equal(t, "/ds/mustAuthenticate?return_to=%2Fv1%2Fexamples", loc)

	_, err = c.Login(ctx, "saml", "/")
	var lerr *launchersdk.Error
	require.True(t, errors.As(err, &lerr))
	require.Equal(t, http.StatusBadRequest, lerr.StatusCode)
	require.Equal(t, launchersdk.CodeUnknownAuthType, lerr.Code)

	must, err := c.MustAuthenticate(ctx, "/v1/examples")
	require.NoError(t, err)
	require.Equal(t, "/v1/examples", must.ReturnTo)
	require.Len(t, must.AuthTypes, 2)
	require.Equal(t, "code", must.AuthTypes[0].Type)
	require.Equal(t, "/ds/login?auth=code&return_to=%2Fv1%2Fexamples", must.AuthTypes[0].LoginURL)
	require.Equal(t, "jwt", must.AuthTypes[1].Type)
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)
	c := s.client()
	ctx := context.Background()
	s.loginWithCode(t, c)

	require.NoError(t, c.Logout(ctx))

	sess, err := c.Session(ctx)
	require.NoError(t, err)
	require.False(t, sess.Authenticated)
	require.Nil(t, sess.Account)
	require.Empty(t, sess.AuthType)
}
