package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ragbench/internal/spec"
)

const (
	// Redis key prefix for stored artifacts
	artifactPrefix = "ragbench:store:"

	// TTL for run artifacts (30 days)
	artifactTTL = 30 * 24 * time.Hour
)

// RedisStore persists artifacts as Redis string values. Artifact keys
// map directly onto Redis keys under a shared prefix.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store from the output config.
func NewRedisStore(cfg spec.RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisStore{client: client}
}

// NewRedisStoreWithClient wraps an existing client, used by tests.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if err := s.client.Set(ctx, artifactPrefix+key, value, artifactTTL).Err(); err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	data, err := s.client.Get(ctx, artifactPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, fmt.Errorf("key cannot be empty")
	}
	n, err := s.client.Exists(ctx, artifactPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check artifact: %w", err)
	}
	return n > 0, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
