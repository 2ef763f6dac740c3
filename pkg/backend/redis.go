package backend

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis server. It is the production backend:
// a single Redis instance can be shared by many independent cache processes,
// which is what makes the SETNX-based lock primitive meaningful.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed store.
func NewRedis(client *redis.Client) *Redis {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &Redis{client: client}
}

// Get retrieves the value for key. A missing key is (nil, false, nil).
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

// Set stores value under key with no expiry.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes key, reporting whether it existed.
func (r *Redis) Delete(ctx context.Context, key string) (bool, error) {
	removed, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis del: %w", err)
	}
	return removed > 0, nil
}

// SetIfAbsent stores value under key only if absent, via SETNX.
func (r *Redis) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	created, err := r.client.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return created, nil
}

// FlushAll removes every key in the current Redis database.
func (r *Redis) FlushAll(ctx context.Context) error {
	if err := r.client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("redis flushdb: %w", err)
	}
	return nil
}
