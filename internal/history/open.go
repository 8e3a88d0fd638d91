package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/vzahanych/weather-widget/internal/config"
)

// OpenGateway builds the gateway selected by cfg.Driver.
func OpenGateway(ctx context.Context, cfg config.HistoryConfig, logger *zap.Logger) (StorageGateway, error) {
	logger = logger.With(zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case "memory":
		logger.Info("Search history kept in memory only")
		return NewMemoryGateway(), nil

	case "file":
		logger.Info("Opening file search history", zap.String("path", cfg.Path))
		return NewFileGateway(afero.NewOsFs(), cfg.Path)

	case "sqlite":
		path := cfg.DSN
		if path == "" {
			if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create history directory: %w", err)
			}
			path = filepath.Join(cfg.Path, "history.db")
		}
		logger.Info("Opening sqlite search history", zap.String("path", path))
		return NewSQLiteGateway(ctx, path)

	case "valkey":
		logger.Info("Connecting to valkey search history", zap.String("address", cfg.Address))
		client, err := DialValkey(cfg.Address, cfg.Password, cfg.DB)
		if err != nil {
			return nil, err
		}
		return NewValkeyGateway(client, cfg.Prefix), nil

	case "redis":
		logger.Info("Connecting to redis search history", zap.String("address", cfg.Address))
		return NewRedisGateway(ctx, cfg.Address, cfg.Password, cfg.DB, cfg.Prefix)

	case "postgres":
		logger.Info("Connecting to postgres search history")
		return NewPostgresGateway(ctx, cfg.DSN)

	default:
		return nil, fmt.Errorf("unknown history driver %q", cfg.Driver)
	}
}
