package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/cache/drivers/memory"
	redisdriver "github.com/aussiebroadwan/todohub/internal/todo/cache/drivers/redis"
	"github.com/aussiebroadwan/todohub/internal/todo/mail"
	"github.com/aussiebroadwan/todohub/internal/todo/worker"
	"github.com/aussiebroadwan/todohub/pkg/slogx"
	"github.com/aussiebroadwan/todohub/pkg/tasklock"
	"github.com/aussiebroadwan/todohub/pkg/todosdk"
)

// WorkerApplication runs the standalone expiry worker. It holds no database
// connection; every mutation goes through the API's worker endpoint.
type WorkerApplication struct {
	cfg    WorkerConfig
	logger *slog.Logger

	scheduler *worker.Scheduler
}

func NewWorker(cfg WorkerConfig) (*WorkerApplication, error) {
	logger := slogx.New(slogx.Config{
		Service: "todo-worker",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	if cfg.TokenURL == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("TODO_TOKEN_URL, TODO_CLIENT_ID and TODO_CLIENT_SECRET are required")
	}

	var lockStore tasklock.Store
	if cfg.RedisAddr == "" {
		logger.Warn("no redis address configured, task lock is process local")
		lockStore = memory.New()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		c, err := redisdriver.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		lockStore = c
	}

	api := todosdk.NewClient(todosdk.Config{
		APIBaseURL:   cfg.APIBaseURL,
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Audience:     cfg.Audience,
	})

	return &WorkerApplication{
		cfg:    cfg,
		logger: logger,
		scheduler: worker.NewScheduler(
			api,
			tasklock.NewWithTTL(lockStore, logger, cfg.LockTTL),
			&mail.LogSender{Logger: logger},
			logger,
			cfg.Interval,
		),
	}, nil
}

// Run starts the scheduler and blocks until a shutdown signal arrives.
func (app *WorkerApplication) Run() error {
	app.scheduler.Start()
	app.logger.Info("todo worker starting", "api", app.cfg.APIBaseURL, "interval", app.cfg.Interval)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	sig := <-shutdown
	app.logger.Info("shutdown signal received", "signal", sig)

	app.scheduler.Stop()
	app.logger.Info("todo worker stopped")
	return nil
}
