package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/catalog"
	httpapi "github.com/aussiebroadwan/dslauncher/internal/launcher/http"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/service"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/store"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/store/drivers/sqlite"
	"github.com/aussiebroadwan/dslauncher/pkg/cryptox"
	"github.com/aussiebroadwan/dslauncher/pkg/dsapi"
	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
	"github.com/aussiebroadwan/dslauncher/pkg/jwtx"
	"github.com/aussiebroadwan/dslauncher/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	sessionSecretEnv = "SESSION_SECRET"
	apiTimeout       = 30 * time.Second
)

// Application wires the launcher together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	catalog *catalog.Catalog
	metrics *service.Metrics

	sessionService      *service.SessionService
	authService         *service.AuthService
	examplesService     *service.ExamplesService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "ds-launcher",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	applyRateLimits()

	cat, err := catalog.Load(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}
	app.catalog = cat

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("launcher starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"oauth_server", app.cfg.OAuthServer,
		"auth_types", app.authService.AuthTypes(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down launcher...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("launcher stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices builds the DocuSign clients and the login strategies.
func (app *Application) initServices() error {
	sealer, ephemeral, err := cryptox.LoadSealer(app.cfg.SessionSecretFile, sessionSecretEnv)
	if err != nil {
		return fmt.Errorf("failed to load session secret: %w", err)
	}
	if ephemeral {
		app.logger.Warn("no session secret configured, sessions will not survive a restart")
	}

	app.metrics = service.NewMetrics()

	transport, err := dsapi.NewTransport()
	if err != nil {
		return err
	}
	httpClient, err := dsapi.NewHTTPClient(app.metrics.InstrumentTransport(transport), apiTimeout)
	if err != nil {
		return err
	}

	scopes, err := app.catalog.Scopes(app.cfg.APIs...)
	if err != nil {
		return fmt.Errorf("DS_APIS: %w", err)
	}

	client := dsauth.NewClient(app.cfg.OAuthServer, app.cfg.ClientID, app.cfg.ClientSecret, app.cfg.RedirectURL)
	client.HTTPClient = httpClient

	pending := &service.PendingRequests{Store: app.db, TTL: app.cfg.AuthRequestTTL}

	var strategies []service.Strategy
	if app.cfg.CodeGrantEnabled() {
		strategies = append(strategies,
			service.NewAuthCodeGrant(client, pending, scopes, app.cfg.TargetAccountID, app.metrics))
	}
	if app.cfg.JWTGrantEnabled() {
		signer, err := jwtx.LoadSignerRS256(app.cfg.PrivateKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load DS_PRIVATE_KEY_FILE: %w", err)
		}
		strategies = append(strategies,
			service.NewJWTGrant(client, pending, signer, app.cfg.ImpersonatedUserID, scopes, app.cfg.TargetAccountID, app.metrics))
	}

	app.authService = service.NewAuthService(pending, app.logger, strategies...)
	app.sessionService = &service.SessionService{
		Store:  app.db,
		Sealer: sealer,
		TTL:    app.cfg.SessionTTL,
	}
	app.examplesService = service.NewExamplesService(app.catalog, app.authService, httpClient, app.metrics)
	app.housekeepingService = service.NewHousekeepingService(app.db, app.logger, app.cfg.HousekeepingInterval)

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.AuthService = app.authService
	router.SessionService = app.sessionService
	router.ExamplesService = app.examplesService
	router.Metrics = app.metrics
	router.SecureCookies = app.cfg.SecureCookies
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
