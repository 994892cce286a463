package cache

import (
	"context"
	"time"

	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore returns a Redis store when Redis is configured and
// reachable, otherwise an in-memory store.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Enabled() {
		store, err := NewRedisIdempotencyStore(ctx, cfg)
		if err == nil {
			logger.Info("Using Redis idempotency store", zap.String("addr", cfg.Addr()))
			return store
		}
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store", zap.Error(err))
	}
	return NewInMemoryIdempotencyStore(5 * time.Minute)
}
