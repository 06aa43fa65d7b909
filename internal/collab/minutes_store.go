package collab

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

const minutesKeyPrefix = "minutes:"

// RedisMinutesStore keeps processed minutes records in Redis. Writes
// are idempotent by record ID: saving the same ID twice overwrites the
// value with identical content.
type RedisMinutesStore struct {
	client *redis.Client
}

// NewRedisMinutesStore wraps an existing redis client.
func NewRedisMinutesStore(client *redis.Client) *RedisMinutesStore {
	return &RedisMinutesStore{client: client}
}

// Save stores the record under its ID.
func (s *RedisMinutesStore) Save(ctx context.Context, record domain.MinutesRecord) error {
	if s.client == nil {
		return errors.New("minutes store: redis not configured")
	}
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, minutesKeyPrefix+record.ID, b, 0).Err()
}

// Get fetches one record by ID; a missing record returns nil.
func (s *RedisMinutesStore) Get(ctx context.Context, id string) (*domain.MinutesRecord, error) {
	if s.client == nil {
		return nil, errors.New("minutes store: redis not configured")
	}
	raw, err := s.client.Get(ctx, minutesKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var record domain.MinutesRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
