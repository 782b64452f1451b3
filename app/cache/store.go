package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store wraps a Redis client holding translated entries. A Store created
// against an unreachable Redis runs in degraded mode: Get always misses and
// Set is a no-op, so callers keep working without caching benefit.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(addr string, ttl time.Duration) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     "", // no password
		DB:           0,  // default DB
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unavailable, translation cache disabled", "addr", addr, "error", err)
		client.Close()
		return &Store{ttl: ttl}
	}

	slog.Info("Connected to Redis", "addr", addr)

	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Available reports whether the store is backed by a live Redis connection.
func (s *Store) Available() bool {
	return s != nil && s.client != nil
}

// Get retrieves a value from cache. Degraded stores and any Redis error are
// reported as a miss, never as a failure.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	if !s.Available() {
		return "", false
	}

	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		slog.Debug("Cache read failed, treating as miss", "key", key, "error", err)
		return "", false
	}

	return val, true
}

// Set stores a value with the configured TTL. A no-op on degraded stores.
func (s *Store) Set(ctx context.Context, key string, value string) {
	if !s.Available() {
		return
	}

	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
}

// Delete removes a key from cache.
func (s *Store) Delete(ctx context.Context, key string) {
	if !s.Available() {
		return
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("Cache delete failed", "key", key, "error", err)
	}
}

// Health returns cache health information for the health endpoint.
func (s *Store) Health() map[string]interface{} {
	health := map[string]interface{}{
		"type": "redis",
	}

	if !s.Available() {
		health["status"] = "degraded"
		return health
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		health["status"] = "unhealthy"
		health["error"] = err.Error()
		return health
	}

	health["status"] = "healthy"
	if dbSize, err := s.client.DBSize(ctx).Result(); err == nil {
		health["key_count"] = dbSize
	}

	return health
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	if !s.Available() {
		return nil
	}
	return s.client.Close()
}
