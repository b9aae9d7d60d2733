package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pagekeep/digest-api/internal/bootstrap"
	"github.com/pagekeep/digest-api/internal/migrate"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger(false)
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.IsDev {
		logger = bootstrap.InitLogger(true)
	}

	logger.InfoContext(ctx, "starting digest-api",
		"db_host", cfg.Postgres.Host,
		"db_name", cfg.Postgres.Name,
		"queue", cfg.Queue.Name,
		"daily_limit", cfg.Digest.DailyLimit,
	)

	db, err := bootstrap.ConnectDB(cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()

	redisClient, err := bootstrap.ConnectRedis(cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	if cfg.Postgres.RunMigrationsOnStart {
		if err = migrate.Run(ctx, db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	server := bootstrap.StartHTTPServer(&cfg, services, logger)

	return bootstrap.RunWithShutdown(server, services, logger)
}
