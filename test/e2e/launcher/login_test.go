//go:build e2e

package launcher_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/dslauncher/pkg/dsapi"
	"github.com/aussiebroadwan/dslauncher/pkg/launchersdk"
	"github.com/stretchr/testify/require"
)

// TestCodeGrantRunsExamples logs in with the Authorization Code Grant and
// runs the eSignature and Click examples against the fake REST API.
func TestCodeGrantRunsExamples(t *testing.T) {
	f := newFakes(t)
	baseURL, cleanup := setupLauncherContainer(t, f, relaxedRateLimits)
	defer cleanup()

	client := launchersdk.NewClient(baseURL)
	ctx := t.Context()
	loginWithCode(t, f, client)

	sess, err := client.Session(ctx)
	require.NoError(t, err)
	require.True(t, sess.Authenticated)
	require.Equal(t, accountID, sess.Account.ID)

	out, err := client.RunExample(ctx, "esignature", "eg003", nil)
	require.NoError(t, err)
	var envelopes dsapi.EnvelopesInformation
	require.NoError(t, json.Unmarshal(out.Result, &envelopes))
	require.Len(t, envelopes.Envelopes, 1)
	require.Equal(t, "e2e-env-1", envelopes.Envelopes[0].EnvelopeID)

	out, err = client.RunExample(ctx, "click", "eg004", nil)
	require.NoError(t, err)
	var clickwraps dsapi.Clickwraps
	require.NoError(t, json.Unmarshal(out.Result, &clickwraps))
	require.Len(t, clickwraps.Clickwraps, 1)

	t.Logf("Ran %d examples, fake API served %d calls", 2, f.api.Calls())
}

// TestJWTGrantConsent walks through the consent detour of the JWT Grant.
func TestJWTGrantConsent(t *testing.T) {
	f := newFakes(t)
	baseURL, cleanup := setupLauncherContainer(t, f, relaxedRateLimits)
	defer cleanup()

	client := launchersdk.NewClient(baseURL)
	ctx := t.Context()

	loc, err := client.Login(ctx, "jwt", "/v1/examples")
	require.NoError(t, err)
	require.Contains(t, loc, "impersonation")

	code, state, err := f.ds.Authorize(loc, userGUID)
	require.NoError(t, err)

	returnTo, err := client.Callback(ctx, code, state)
	require.NoError(t, err)
	require.Equal(t, "/v1/examples", returnTo)

	sess, err := client.Session(ctx)
	require.NoError(t, err)
	require.True(t, sess.Authenticated)
	require.Equal(t, "jwt", sess.AuthType)
	require.Equal(t, 1, f.ds.Grants("urn:ietf:params:oauth:grant-type:jwt-bearer"))
}

// TestRejectedTokenAsksForLogin verifies a token refused by DocuSign turns
// into a reauthenticate response pointing at the same login method.
func TestRejectedTokenAsksForLogin(t *testing.T) {
	f := newFakes(t)
	baseURL, cleanup := setupLauncherContainer(t, f, relaxedRateLimits)
	defer cleanup()

	client := launchersdk.NewClient(baseURL)
	loginWithCode(t, f, client)

	f.api.SetAuthorize(func(string) bool { return false })

	_, err := client.RunExample(t.Context(), "esignature", "eg003", nil)
	var lerr *launchersdk.Error
	require.True(t, errors.As(err, &lerr))
	require.Equal(t, http.StatusUnauthorized, lerr.StatusCode)
	require.True(t, lerr.Reauthenticate())
	require.Equal(t, launchersdk.LoginPath("code", "/v1/examples/esignature/eg003"), lerr.LoginURL)
}
