package cache

import (
	"context"

	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore returns a Redis store when Redis is configured and reachable,
// and an in-memory store otherwise.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Addr() == "" {
		logger.Info("Redis not configured, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore()
	}

	store, err := NewRedisIdempotencyStore(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore()
	}
	logger.Info("Using Redis idempotency store", zap.String("addr", cfg.Addr()))
	return store
}
