package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/storage"
)

// Storage is a Redis-backed implementation of the session store
type Storage struct {
	client *redis.Client
	keys   keys
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		keys:   newKeys(cfg.KeyPrefix),
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.SessionStore = (*Storage)(nil)

func (s *Storage) Save(ctx context.Context, key model.SessionKey, user *model.User) error {
	record, role, err := storage.Encode(user)
	if err != nil {
		return err
	}

	// Record and marker are written in one MULTI/EXEC, without expiry
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keys.record(key), record, 0)
		pipe.Set(ctx, s.keys.role(key), role, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Storage) Load(ctx context.Context, key model.SessionKey) (*model.User, error) {
	values, err := s.client.MGet(ctx, s.keys.record(key), s.keys.role(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	record, _ := values[0].(string)
	role, _ := values[1].(string)
	return storage.Decode([]byte(record), role)
}

func (s *Storage) Clear(ctx context.Context, key model.SessionKey) error {
	if err := s.client.Del(ctx, s.keys.record(key), s.keys.role(key)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
