package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/casino/internal/config"
	"github.com/jwebster45206/casino/pkg/storage"
)

const (
	redisConnectAttempts = 5
	redisRetryDelay      = 500 * time.Millisecond
)

// New builds the Store selected by cfg.SaveBackend.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.SaveBackend {
	case config.BackendFile:
		fs := NewFileStore(cfg.SavePath, logger)
		logger.Info("Using file save backend", "path", fs.Path())
		return fs, nil
	case config.BackendRedis:
		rs, err := NewRedisStore(cfg.RedisURL, cfg.Profile, logger)
		if err != nil {
			return nil, err
		}
		if err := rs.WaitForConnection(ctx, redisConnectAttempts, redisRetryDelay); err != nil {
			_ = rs.Close()
			return nil, err
		}
		return rs, nil
	case config.BackendSQLite:
		return NewSQLiteStore(ctx, cfg.SQLitePath, cfg.Profile, logger)
	default:
		return nil, fmt.Errorf("unknown save backend: %q", cfg.SaveBackend)
	}
}
