//go:build e2e

package launcher_test

import (
	"testing"

	"github.com/aussiebroadwan/dslauncher/pkg/launchersdk"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies the probes once the launcher is up.
func TestHealthEndpoints(t *testing.T) {
	f := newFakes(t)
	baseURL, cleanup := setupLauncherContainer(t, f, relaxedRateLimits)
	defer cleanup()

	client := launchersdk.NewClient(baseURL)

	live, err := client.GetLiveness(t.Context())
	assertHealthy(t, live, err)

	ready, err := client.GetReadiness(t.Context())
	assertHealthy(t, ready, err)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Auth)

	must, err := client.MustAuthenticate(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, must.AuthTypes, 2)
}
