package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/service"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/store"
	"github.com/aussiebroadwan/dslauncher/pkg/httpx"
	"github.com/aussiebroadwan/dslauncher/pkg/slogx"

	_ "github.com/aussiebroadwan/dslauncher/api/launcher" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	AuthService     *service.AuthService
	SessionService  *service.SessionService
	ExamplesService *service.ExamplesService
	Metrics         *service.Metrics

	// DefaultReturnTo is where logins land when the caller gave no
	// (or an unsafe) return_to.
	DefaultReturnTo string

	// SecureCookies marks the session cookie Secure. Off only for plain
	// http development setups.
	SecureCookies bool
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:             http.NewServeMux(),
		buildVersion:    buildVersion,
		startTime:       time.Now(),
		store:           st,
		logger:          logger,
		DefaultReturnTo: "/v1/session",
		SecureCookies:   true,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSession()
	r.registerExamples()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpx.Chain(httpSwagger.Handler(),
		httpx.RateLimitByIP(httpx.PublicLimit),
	))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			DocuSign Examples Launcher API
//	@version		0.1.0
//	@description	Runs DocuSign API examples on behalf of a browser session.
//	@description
//	@description	Log in with the Authorization Code Grant (/ds/login?auth=code) or the JWT Grant
//	@description	(/ds/login?auth=jwt). Credentials stay server side; the browser only holds the
//	@description	ds_session cookie.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/dslauncher
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:3000
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						ds_session
//	@description				Session cookie issued by /ds/login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) sessions(create bool) httpx.Middleware {
	m := &SessionMiddleware{Sessions: r.SessionService, Secure: r.SecureCookies}
	return m.Load(create)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Auth:            r.AuthService,
		Sessions:        r.SessionService,
		DefaultReturnTo: r.DefaultReturnTo,
	}

	// Login, callback and logout all touch the account server or the
	// session store - strict limit by IP. The limiter runs before the
	// session middleware so throttled requests never create sessions.
	r.Mux.Handle("GET /ds/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.AuthLimit),
			r.sessions(true),
		),
	)
	r.Mux.Handle("GET /ds/callback",
		httpx.Chain(http.HandlerFunc(h.HandleCallback),
			httpx.RateLimitByIP(httpx.AuthLimit),
			r.sessions(true),
		),
	)
	r.Mux.Handle("GET /ds/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.AuthLimit),
			r.sessions(false),
		),
	)

	// Static description of the login options
	r.Mux.Handle("GET /ds/mustAuthenticate",
		httpx.Chain(http.HandlerFunc(h.HandleMustAuthenticate),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerSession() {
	h := &SessionHandler{Auth: r.AuthService}

	r.Mux.Handle("GET /v1/session",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.PublicLimit),
			r.sessions(false),
		),
	)
}

func (r *Router) registerExamples() {
	h := &ExamplesHandler{
		Examples: r.ExamplesService,
		Sessions: r.SessionService,
	}

	// Catalog reads are public
	r.Mux.Handle("GET /v1/examples",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/examples/{api}/{code}",
		httpx.Chain(http.HandlerFunc(h.HandleDescribe),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Each run costs a DocuSign API call - limit per session, falling back
	// to the client IP for cookieless callers.
	r.Mux.Handle("POST /v1/examples/{api}/{code}",
		httpx.Chain(http.HandlerFunc(h.HandleRun),
			httpx.RateLimit(httpx.ExampleLimit, httpx.FirstKeyExtractor(
				httpx.CookieKeyExtractor(SessionCookie),
				httpx.IPKeyExtractor,
			)),
			r.sessions(false),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.AuthService),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.Metrics.Handler())
	}
}
