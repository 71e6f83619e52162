package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jwebster45206/casino/pkg/player"
	"github.com/jwebster45206/casino/pkg/storage"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "casino:player:"

// RedisStore keeps the player record as a JSON string in Redis.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
	key    string
}

// Ensure RedisStore implements Store interface
var _ storage.Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store for the given profile.
// redisURL may be a bare host:port or a redis:// URL.
func NewRedisStore(redisURL, profile string, logger *slog.Logger) (*RedisStore, error) {
	opts := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opts = parsed
	}

	return &RedisStore{
		client: redis.NewClient(opts),
		logger: logger,
		key:    redisKeyPrefix + profile,
	}, nil
}

// Key returns the Redis key holding the record.
func (r *RedisStore) Key() string {
	return r.key
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStore) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStore) Load(ctx context.Context) (player.Record, error) {
	data, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("No saved player state", "key", r.key)
			return nil, nil
		}
		r.logger.Error("Failed to load player state", "key", r.key, "error", err)
		return nil, fmt.Errorf("failed to load player state: %w", err)
	}
	if data == "" {
		return nil, nil
	}

	rec, err := player.Decode([]byte(data))
	if err != nil {
		r.logger.Error("Failed to unmarshal player state", "key", r.key, "error", err)
		return nil, fmt.Errorf("failed to unmarshal player state: %w", err)
	}
	return rec, nil
}

func (r *RedisStore) Save(ctx context.Context, rec player.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal player state: %w", err)
	}

	if err := r.client.Set(ctx, r.key, string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save player state", "key", r.key, "error", err)
		return fmt.Errorf("failed to save player state: %w", err)
	}
	return nil
}

func (r *RedisStore) Reset(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		r.logger.Error("Failed to delete player state", "key", r.key, "error", err)
		return fmt.Errorf("failed to delete player state: %w", err)
	}
	return nil
}
