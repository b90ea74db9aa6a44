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

	"github.com/aussiebroadwan/todohub/internal/todo/cache"
	"github.com/aussiebroadwan/todohub/internal/todo/cache/drivers/memory"
	redisdriver "github.com/aussiebroadwan/todohub/internal/todo/cache/drivers/redis"
	httpapi "github.com/aussiebroadwan/todohub/internal/todo/http"
	"github.com/aussiebroadwan/todohub/internal/todo/idp"
	"github.com/aussiebroadwan/todohub/internal/todo/service"
	"github.com/aussiebroadwan/todohub/internal/todo/store"
	"github.com/aussiebroadwan/todohub/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/todohub/internal/todo/uow"
	"github.com/aussiebroadwan/todohub/pkg/jwtx"
	"github.com/aussiebroadwan/todohub/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the todo API with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	cache     cache.Cache
	keys      *jwtx.KeySet
	keySource *jwtx.RemoteKeySource

	// Services
	userService     *service.UserService
	todoService     *service.TodoService
	todoListService *service.TodoListService
	workerService   *service.WorkerService

	// HTTP server
	server *http.Server
	router *httpapi.Router

	// Key refresher lifecycle
	refreshStopCh chan struct{}
	refreshDoneCh chan struct{}
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "todo-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		refreshStopCh: make(chan struct{}),
		refreshDoneCh: make(chan struct{}),
	}

	if cfg.Issuer == "" {
		return nil, fmt.Errorf("TODO_ISSUER is required")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initKeys(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	go app.refreshKeys()

	app.logger.Info("todo api starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down todo api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	close(app.refreshStopCh)
	<-app.refreshDoneCh

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("todo api stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initCache connects to Redis, or falls back to an in-process cache when no
// address is configured. The fallback loses cross-replica sharing and the
// distributed lock, fine for local development only.
func (app *Application) initCache() error {
	if app.cfg.RedisAddr == "" {
		app.logger.Warn("no redis address configured, using in-process cache")
		app.cache = memory.New()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := redisdriver.New(ctx, app.cfg.RedisAddr, app.cfg.RedisPassword, app.cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.cache = c

	app.logger.Info("connected to redis", "addr", app.cfg.RedisAddr)
	return nil
}

// initKeys fetches the provider's signing keys. The API can't verify a
// single token without them, so a failed initial fetch is fatal.
func (app *Application) initKeys() error {
	app.keys = jwtx.NewKeySet()
	app.keySource = jwtx.NewRemoteKeySource(app.cfg.Issuer)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.keySource.Refresh(ctx, app.keys); err != nil {
		return fmt.Errorf("failed to fetch provider keys: %w", err)
	}

	app.logger.Info("provider signing keys loaded", "issuer", app.cfg.Issuer)
	return nil
}

// refreshKeys periodically re-fetches the provider's JWKS so key rotations
// upstream don't strand us with stale keys.
func (app *Application) refreshKeys() {
	defer close(app.refreshDoneCh)

	ticker := time.NewTicker(app.cfg.JWKSRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := app.keySource.Refresh(ctx, app.keys); err != nil {
				// Keep serving with the keys we have
				app.logger.Error("provider key refresh failed", "error", err)
			}
			cancel()
		case <-app.refreshStopCh:
			return
		}
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	factory := &uow.Factory{
		Store:  app.db,
		Cache:  app.cache,
		Logger: app.logger,
		Listener: &service.CacheSyncListener{
			Store:  app.db,
			Cache:  app.cache,
			Logger: app.logger,
		},
	}

	app.userService = &service.UserService{
		UoW:    factory,
		IdP:    idp.New(app.cfg.Issuer),
		Logger: app.logger,
	}
	app.todoService = &service.TodoService{UoW: factory}
	app.todoListService = &service.TodoListService{UoW: factory}
	app.workerService = &service.WorkerService{UoW: factory, Logger: app.logger}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	verifier := jwtx.NewVerifierRS256(app.keys, app.cfg.Issuer, []string{app.cfg.Audience})

	router := httpapi.NewRouter(
		verifier,
		BuildVersion,
		app.db,
		app.cache,
		app.logger,
	)
	router.UserService = app.userService
	router.TodoService = app.todoService
	router.TodoListService = app.todoListService
	router.WorkerService = app.workerService
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
