package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/infrastructure/config"
)

// DefaultKeyPrefix namespaces idempotency keys in a shared Redis database
const DefaultKeyPrefix = "backoffice:idempotency:"

// RedisIdempotencyStore remembers applied request keys in Redis so that every
// server instance rejects a replayed payout.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
	ownClient bool
}

// NewRedisIdempotencyStore connects to Redis and verifies the connection within ctx
func NewRedisIdempotencyStore(ctx context.Context, cfg config.RedisConfig) (*RedisIdempotencyStore, error) {
	if cfg.Addr() == "" {
		return nil, fmt.Errorf("redis host is not configured")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}

	store := NewRedisIdempotencyStoreWithClient(client, DefaultKeyPrefix)
	store.ownClient = true
	return store, nil
}

// NewRedisIdempotencyStoreWithClient wraps an existing client; Close leaves the client open
func NewRedisIdempotencyStoreWithClient(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisIdempotencyStore{client: client, keyPrefix: keyPrefix}
}

// MarkProcessed claims key with SET NX and a TTL; false means another request got there first
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}
	return ok, nil
}

// IsProcessed reports whether key has been claimed and not yet expired
func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	return n > 0, nil
}

// Ping checks the Redis connection
func (s *RedisIdempotencyStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client if the store created it
func (s *RedisIdempotencyStore) Close() error {
	if !s.ownClient {
		return nil
	}
	return s.client.Close()
}

// Ensure RedisIdempotencyStore implements IdempotencyStore
var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)
