package service

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the launcher's collectors. A nil *Metrics records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	tokenRequests *prometheus.CounterVec
	exampleRuns   *prometheus.CounterVec
	apiRequests   *prometheus.CounterVec
	apiDuration   *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		tokenRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dslauncher",
			Name:      "token_requests_total",
			Help:      "Token requests to the DocuSign account server by grant and outcome.",
		}, []string{"grant", "outcome"}),
		exampleRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dslauncher",
			Name:      "example_runs_total",
			Help:      "Example executions by api, example and outcome.",
		}, []string{"api", "example", "outcome"}),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dslauncher",
			Name:      "docusign_api_requests_total",
			Help:      "Outbound DocuSign REST requests by status code and method.",
		}, []string{"code", "method"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dslauncher",
			Name:      "docusign_api_request_duration_seconds",
			Help:      "Outbound DocuSign REST request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.tokenRequests,
		m.exampleRuns,
		m.apiRequests,
		m.apiDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// InstrumentTransport wraps rt so outbound API calls are counted and timed.
func (m *Metrics) InstrumentTransport(rt http.RoundTripper) http.RoundTripper {
	if m == nil {
		return rt
	}
	if rt == nil {
		rt = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(m.apiRequests,
		promhttp.InstrumentRoundTripperDuration(m.apiDuration, rt))
}

func (m *Metrics) observeToken(grant string, err error) {
	if m == nil {
		return
	}
	m.tokenRequests.WithLabelValues(grant, outcome(err)).Inc()
}

func (m *Metrics) observeExample(api, code string, err error) {
	if m == nil {
		return
	}
	m.exampleRuns.WithLabelValues(api, code, outcome(err)).Inc()
}

func outcome(err error) string {
	var oe *dsauth.OAuth2Error
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &oe):
		return oe.Code
	case errors.Is(err, ErrReauthenticate):
		return "reauthenticate"
	default:
		return "error"
	}
}
