package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/angelmondragon/chemstock/pkg/redis"
)

// RedisStore persists sessions in Redis so they survive restarts and can be
// shared across instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps the provided Redis client as a session backend.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Data, bool, error) {
	raw, err := s.client.Get(ctx, redis.SessionKey(id))
	if err != nil {
		if redis.IsMiss(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, false, fmt.Errorf("session decode: %w", err)
	}
	return &data, true, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, redis.SessionKey(id), raw, ttl); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redis.SessionKey(id)); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
