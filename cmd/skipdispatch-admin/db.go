package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/irishmetals/skipdispatch/internal/bootstrap"
	"github.com/irishmetals/skipdispatch/internal/service"
)

func withDatabase(cmdCtx *commandContext, f func(context.Context, *sql.DB) error) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, cmdCtx.Timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", cerr)
		}
	}()

	return f(ctx, db)
}

// withLifecycle runs f against a lifecycle service built from the loaded
// config. Redis is connected when configured so live clients see CLI changes.
func withLifecycle(cmdCtx *commandContext, f func(context.Context, *service.JobLifecycleService) error) error {
	return withDatabase(cmdCtx, func(ctx context.Context, db *sql.DB) error {
		var client redis.UniversalClient
		if cmdCtx.Config.Redis.IsConfigured() {
			c, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
				RedisConfig: cmdCtx.Config.Redis,
				Logger:      cmdCtx.Logger,
			})
			if err != nil {
				return fmt.Errorf("connect redis: %w", err)
			}
			client = c
			defer func() {
				if cerr := c.Close(); cerr != nil {
					cmdCtx.Logger.Warn("redis close failed", "error", cerr)
				}
			}()
		}

		cfg := cmdCtx.Config
		svc := bootstrap.NewLifecycleService(bootstrap.LifecycleDeps{
			Config:      &cfg,
			DB:          db,
			RedisClient: client,
			Logger:      cmdCtx.Logger,
		})
		return f(ctx, svc)
	})
}

func guardRemoteHost(cmdCtx *commandContext, allow bool) error {
	if cmdCtx.Config.Postgres.IsLocal() || allow {
		return nil
	}
	return fmt.Errorf(
		"refusing to run against potentially remote database host %q; re-run with --allow-remote if this is intentional",
		cmdCtx.Config.Postgres.Host,
	)
}
