package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/aussiebroadwan/dslauncher/pkg/dsapi"
	"github.com/aussiebroadwan/dslauncher/pkg/launchersdk"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	cat, err := s.client().Catalog(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, cat.APIs)

	implemented := map[string]bool{}
	for _, api := range cat.APIs {
		for _, ex := range api.Examples {
			implemented[ex.Path] = ex.Implemented
		}
	}
	require.True(t, implemented["/v1/examples/esignature/eg003"])
	require.True(t, implemented["/v1/examples/click/eg004"])
	require.False(t, implemented["/v1/examples/esignature/eg001"])

	ex, err := s.client().Example(ctx, "esignature", "eg004")
	require.NoError(t, err)
	require.Equal(t, "esignature", ex.API)
	require.True(t, ex.Example.Implemented)
	require.Len(t, ex.Example.Params, 1)
	require.Equal(t, "envelope_id", ex.Example.Params[0].Name)
	require.True(t, ex.Example.Params[0].Required)

	_, err = s.client().Example(ctx, "esignature", "eg999")
	var lerr *launchersdk.Error
	require.True(t, errors.As(err, &lerr))
	require.Equal(t, http.StatusNotFound, lerr.StatusCode)
}

func TestRunExample(t *testing.T) {
	s := newTestServer(t)
	c := s.client()
	ctx := context.Background()
	s.loginWithCode(t, c)

	t.Run("status changes", func(t *testing.T) {
		out, err := c.RunExample(ctx, "esignature", "eg003", map[string]string{"from_date": "2024-01-01"})
		require.NoError(t, err)
		require.Equal(t, "eg003", out.Example)

		var info dsapi.EnvelopesInformation
		require.NoError(t, json.Unmarshal(out.Result, &info))
		require.Len(t, info.Envelopes, 1)
		require.Equal(t, "env-1", info.Envelopes[0].EnvelopeID)
	})

	t.Run("form body", func(t *testing.T) {
		form := url.Values{"envelope_id": {"env-1"}}
		req, err := http.NewRequest(http.MethodPost, s.URL+"/v1/examples/esignature/eg005", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.HTTPClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body(t, resp), "bo@example.com")
	})

	t.Run("missing parameter", func(t *testing.T) {
		_, err := c.RunExample(ctx, "esignature", "eg004", nil)
		var lerr *launchersdk.Error
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, http.StatusBadRequest, lerr.StatusCode)
		require.Equal(t, launchersdk.CodeInvalidRequest, lerr.Code)
	})

	t.Run("unknown envelope keeps the api status", func(t *testing.T) {
		_, err := c.RunExample(ctx, "esignature", "eg004", map[string]string{"envelope_id": "nope"})
		var lerr *launchersdk.Error
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, http.StatusNotFound, lerr.StatusCode)
		require.Equal(t, "ENVELOPE_DOES_NOT_EXIST", lerr.Code)
	})

	t.Run("not implemented", func(t *testing.T) {
		_, err := c.RunExample(ctx, "esignature", "eg001", nil)
		var lerr *launchersdk.Error
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, http.StatusNotImplemented, lerr.StatusCode)
	})

	t.Run("jwt only api", func(t *testing.T) {
		_, err := c.RunExample(ctx, "monitor", "eg001", nil)
		var lerr *launchersdk.Error
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, http.StatusForbidden, lerr.StatusCode)
		require.Equal(t, launchersdk.CodeJWTRequired, lerr.Code)
		require.Equal(t, "/ds/login?auth=jwt&return_to=%2Fv1%2Fexamples%2Fmonitor%2Feg001", lerr.LoginURL)
	})

	t.Run("unknown example", func(t *testing.T) {
		_, err := c.RunExample(ctx, "rooms", "eg404", nil)
		var lerr *launchersdk.Error
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, http.StatusNotFound, lerr.StatusCode)
	})
}

func TestRunExampleNeedsLogin(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.client().RunExample(ctx, "esignature", "eg003", nil)
	var lerr *launchersdk.Error
	require.True(t, errors.As(err, &lerr))
	require.True(t, lerr.Reauthenticate())
	require.Equal(t, http.StatusUnauthorized, lerr.StatusCode)
	require.Equal(t, "/ds/mustAuthenticate?return_to=%2Fv1%2Fexamples%2Fesignature%2Feg003", lerr.LoginURL)
}

func TestRunExampleRejectedToken(t *testing.T) {
	s := newTestServer(t)
	c := s.client()
	ctx := context.Background()
	s.loginWithCode(t, c)

	s.api.SetAuthorize(func(string) bool { return false })

	_, err := c.RunExample(ctx, "click", "eg004", nil)
	var lerr *launchersdk.Error
	require.True(t, errors.As(err, &lerr))
	require.True(t, lerr.Reauthenticate())
	require.Equal(t, "/ds/login?auth=code&return_to=%2Fv1%2Fexamples%2Fclick%2Feg004", lerr.LoginURL)
}

func TestRunExampleMalformedBody(t *testing.T) {
	s := newTestServer(t)
	c := s.client()
	s.loginWithCode(t, c)

	req, err := http.NewRequest(http.MethodPost, s.URL+"/v1/examples/esignature/eg003", strings.NewReader(`["not","an","object"]`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
