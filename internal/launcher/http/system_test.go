package http_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/dslauncher/pkg/launchersdk"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	live, err := s.client().GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := s.client().GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Auth)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.loginWithCode(t, s.client())

	resp := get(t, s.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body(t, resp), `dslauncher_token_requests_total{grant="authorization_code",outcome="ok"} 1`)
}

func TestMetricsIgnoreUnknownExamplePaths(t *testing.T) {
	s := newTestServer(t)
	c := s.client()
	s.loginWithCode(t, c)
	ctx := context.Background()

	for i := range 20 {
		_, err := c.RunExample(ctx, fmt.Sprintf("junk%d", i), fmt.Sprintf("x%d", i), nil)
		var lerr *launchersdk.Error
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, http.StatusNotFound, lerr.StatusCode)
	}

	resp := get(t, s.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotContains(t, body(t, resp), "junk")
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	resp := get(t, s.URL+"/livez")
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestSwaggerDoc(t *testing.T) {
	s := newTestServer(t)

	resp := get(t, s.URL+"/swagger/doc.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body(t, resp), "/v1/examples/{api}/{code}")
}
