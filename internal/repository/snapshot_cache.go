package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

const snapshotCacheKey = "report:snapshot"

// RedisSnapshotCache keeps the last good snapshot so a restarted
// service can serve data before its first refresh completes.
type RedisSnapshotCache struct {
	client *redis.Client
}

// NewRedisSnapshotCache wraps an existing redis client; nil yields nil
// so callers can skip caching cleanly.
func NewRedisSnapshotCache(client *redis.Client) *RedisSnapshotCache {
	if client == nil {
		return nil
	}
	return &RedisSnapshotCache{client: client}
}

// Store overwrites the cached snapshot.
func (c *RedisSnapshotCache) Store(ctx context.Context, snap *domain.ReportSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotCacheKey, b, 0).Err()
}

// Load returns the cached snapshot, or nil when none exists.
func (c *RedisSnapshotCache) Load(ctx context.Context) (*domain.ReportSnapshot, error) {
	raw, err := c.client.Get(ctx, snapshotCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap domain.ReportSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
