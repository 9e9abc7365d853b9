package application

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/rest"
)

// RunApp - runs the application until ctx is canceled or the HTTP server fails.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	gameRepo, closeStorage, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	botService := service.NewBotService(logger, service.EngineSettings{
		Shortcuts: !conf.Engine.DisableShortcuts,
		Pruning:   !conf.Engine.DisablePruning,
	})
	gameService := service.NewGameService(logger, gameRepo, botService, conf.Engine.MaxDepth)
	analysisService := service.NewAnalysisService()

	server := rest.New(logger, conf.HTTPPort, gameService, analysisService)

	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return server.Start(ctx)
	})

	log.Info("Application started", "storage", conf.Storage, "port", conf.HTTPPort)

	if err := errg.Wait(); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	if conf.Storage != config.StorageRedis {
		return repository.NewMemoryGameRepository(conf.GameTTL), func() error { return nil }, nil
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewGameRepository(redisStorage, conf.GameTTL), redisStorage.Close, nil
}
