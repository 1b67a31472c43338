package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/service"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/store"
	"github.com/aussiebroadwan/dslauncher/pkg/httpx"
	"github.com/aussiebroadwan/dslauncher/pkg/launchersdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the session database and login strategies
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	launchersdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	launchersdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	auth *service.AuthService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &launchersdk.HealthChecks{
			Database: "ok",
			Auth:     "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if auth == nil || len(auth.AuthTypes()) == 0 {
			checks.Auth = "error: no login strategy configured"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, launchersdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
