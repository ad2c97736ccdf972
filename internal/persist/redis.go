package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/beanmart/beanmart/pkg/domain"
)

// DefaultRedisKey is the key used when none is configured.
const DefaultRedisKey = "beanmart:session"

// RedisStore keeps the snapshot as a JSON string under a single key.
// Snapshots do not expire; Clear deletes the key.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a Redis-backed snapshot store. Key may be empty.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Load(ctx context.Context) (*domain.Session, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist.RedisStore.Load: %w", err)
	}
	s, err := decode(b)
	if err != nil {
		return nil, fmt.Errorf("persist.RedisStore.Load: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s domain.Session) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, b, 0).Err(); err != nil {
		return fmt.Errorf("persist.RedisStore.Save: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("persist.RedisStore.Clear: %w", err)
	}
	return nil
}
