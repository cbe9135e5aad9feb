package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/clienthub/internal/portal/http"
	"github.com/aussiebroadwan/clienthub/internal/portal/service"
	"github.com/aussiebroadwan/clienthub/internal/portal/store"
	"github.com/aussiebroadwan/clienthub/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/clienthub/pkg/jwtx"
	"github.com/aussiebroadwan/clienthub/pkg/observability"
	"github.com/aussiebroadwan/clienthub/pkg/querycache"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the portal service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	keys    *jwtx.KeySet
	remote  *jwtx.RemoteJWKS // nil for static key sources
	metrics *observability.Metrics
	cache   querycache.Cache

	// Services
	identity     *service.IdentityResolver
	guard        *service.RouteGuard
	hubs         *service.HubService
	memberships  *service.MembershipService
	invites      *service.InviteService
	shareLinks   *service.ShareLinkService
	events       *service.EventLogger
	eventQueries *service.EventQueryService

	// Background work bound to the application lifetime
	ctx    context.Context
	cancel context.CancelFunc

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "portal-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	if err := app.initDatabase(); err != nil {
		app.cancel()
		return nil, err
	}

	keys, remote, err := InitIdentityKeys(app.ctx, app.cfg, app.logger)
	if err != nil {
		app.cancel()
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize identity keys: %w", err)
	}
	app.keys = keys
	app.remote = remote

	app.metrics = observability.NewMetrics(prometheus.NewRegistry())
	app.metrics.RegisterRuntimeCollectors()

	if err := app.initCache(); err != nil {
		app.cancel()
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	go refreshJWKS(app.ctx, app.remote, app.cfg.JWKSRefreshInterval, app.logger)

	app.logger.Info("portal service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"cache", app.cache.Backend(),
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown stops accepting requests, drains queued engagement events and
// closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down portal service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Handlers are done; whatever is still queued gets the rest of the grace period.
	if err := app.events.Close(ctx); err != nil {
		app.logger.Error("event queue not drained", "error", err)
	}

	app.cancel()

	if err := app.cache.Close(); err != nil {
		app.logger.Error("error closing query cache", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("portal service stopped")
	return nil
}

// initDatabase opens the SQLite database and applies migrations.
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initCache selects the shared Redis cache when configured, otherwise an
// in-process LRU.
func (app *Application) initCache() error {
	if app.cfg.RedisAddr == "" {
		app.cache = querycache.NewMemoryCache(app.cfg.QueryCacheSize, app.cfg.QueryCacheTTL)
		return nil
	}

	cache, err := querycache.NewRedisCache(app.ctx, querycache.RedisConfig{
		Addr:      app.cfg.RedisAddr,
		Password:  app.cfg.RedisPassword,
		DB:        app.cfg.RedisDB,
		TTL:       app.cfg.QueryCacheTTL,
		KeyPrefix: "portal",
	})
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.cache = cache

	app.logger.Info("shared query cache enabled", "addr", app.cfg.RedisAddr)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.identity = &service.IdentityResolver{
		Verifier: jwtx.NewVerifierEdDSA(app.keys, app.cfg.IdentityIssuer, []string{app.cfg.IdentityAudience}),
		Store:    app.db,
		Remote:   app.remote,
	}

	app.hubs = &service.HubService{Store: app.db}
	app.memberships = &service.MembershipService{Store: app.db}
	app.guard = &service.RouteGuard{
		Store:       app.db,
		Identity:    app.identity,
		Memberships: app.memberships,
		Metrics:     app.metrics,
		LoginPath:   app.cfg.LoginPath,
	}

	app.events = service.NewEventLogger(
		app.db.Events(),
		service.EventLoggerConfig{
			QueueSize:   app.cfg.EventQueueSize,
			MaxAttempts: app.cfg.EventMaxAttempts,
		},
		app.metrics,
		app.logger,
		nil,
	)

	app.invites = &service.InviteService{
		Store:       app.db,
		Events:      app.events,
		Metrics:     app.metrics,
		StaffDomain: app.cfg.StaffDomain,
		InviteTTL:   app.cfg.InviteTTL,
	}
	app.shareLinks = &service.ShareLinkService{Store: app.db, Metrics: app.metrics}

	cacheError := func(backend, op string, err error) {
		app.metrics.ObserveCacheError(backend)
		app.logger.Warn("query cache degraded", "backend", backend, "op", op, "error", err)
	}
	app.eventQueries = &service.EventQueryService{
		Store: app.db,
		Cache: querycache.NewLoader(app.cache, querycache.Stats{
			Hit:   app.metrics.ObserveCacheHit,
			Miss:  app.metrics.ObserveCacheMiss,
			Error: cacheError,
		}),
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.keys, BuildVersion, app.db, app.metrics, app.logger)

	router.Identity = app.identity
	router.Guard = app.guard
	router.Hubs = app.hubs
	router.Memberships = app.memberships
	router.Invites = app.invites
	router.ShareLinks = app.shareLinks
	router.Events = app.events
	router.EventQueries = app.eventQueries
	if pinger, ok := app.cache.(httpapi.Pinger); ok {
		router.Cache = pinger
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
