// Command completion is the operator tool for inspecting and recomputing
// athlete profile completion outside the API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/scoutline/scoutline-api/internal/config"
	"github.com/scoutline/scoutline-api/internal/domain/athlete"
	"github.com/scoutline/scoutline-api/internal/pkg/database"
	"github.com/scoutline/scoutline-api/internal/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(func(ctx context.Context) (completionService, func(), error) {
		return openService(ctx, cfg)
	})
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// openService connects to PostgreSQL only. The CLI never reads view counters
// or media objects, so Redis, storage and metrics stay unset.
func openService(ctx context.Context, cfg *config.Config) (completionService, func(), error) {
	db, err := database.NewPostgres(ctx, cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: database.DefaultPool.ConnMaxLifetime,
		ConnMaxIdleTime: database.DefaultPool.ConnMaxIdleTime,
	})
	if err != nil {
		return nil, nil, err
	}

	repo := athlete.NewRepository(db)
	svc := athlete.NewService(repo, athlete.NewStatsStore(nil, repo), nil, nil, cfg.PublishMinCompletion)

	log.Debug().Msg("Completion CLI connected")
	return svc, func() { database.ClosePostgres(db) }, nil
}
