package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps entries in Redis. SET replaces the value atomically, which
// satisfies the all-or-nothing write requirement without extra coordination.
// Entries carry their own timestamp; the Redis expiry is a safety net set a
// little past the reader-side TTL so stale keys get collected.
type RedisStore struct {
	client *redis.Client
	expiry time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		expiry: ttl + time.Hour,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to read cache entry %q: %w", key, err)
	}

	var entry Entry
	if err := entry.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry %q: %w", key, err)
	}

	return &entry, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, entry *Entry) error {
	if err := s.client.Set(ctx, key, entry, s.expiry).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry %q: %w", key, err)
	}
	return nil
}
