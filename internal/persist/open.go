package persist

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/beanmart/beanmart/internal/config"
	"github.com/beanmart/beanmart/pkg/domain"
)

// Backend is a snapshot store that may hold resources.
type Backend interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, s domain.Session) error
	Clear(ctx context.Context) error
	Close() error
}

// Open builds the backend selected by cfg.Session.Backend.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Session.Backend {
	case config.BackendFile:
		return nopCloser{NewFileStore(cfg.Session.Path)}, nil
	case config.BackendMemory:
		return nopCloser{NewMemoryStore()}, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close() //nolint:errcheck
			return nil, fmt.Errorf("persist.Open: redis %s: %w", cfg.Redis.Addr, err)
		}
		return redisBackend{RedisStore: NewRedisStore(client, cfg.Redis.Key), client: client}, nil
	case config.BackendSQLite:
		s, err := OpenSQLiteStore(ctx, cfg.SQLite.Path, cfg.SQLite.Name)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("persist.Open: unknown backend %q", cfg.Session.Backend)
	}
}

type snapshotStore interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, s domain.Session) error
	Clear(ctx context.Context) error
}

type nopCloser struct {
	snapshotStore
}

func (nopCloser) Close() error { return nil }

type redisBackend struct {
	*RedisStore
	client *redis.Client
}

func (r redisBackend) Close() error { return r.client.Close() }
