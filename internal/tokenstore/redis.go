package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"launchpad/internal/observability"
)

// RedisStore persists the token in Redis. Used by automation environments
// where several client processes share one authenticated session.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis at addr (host:port or redis:// URL) and
// verifies the connection before returning.
func NewRedisStore(addr string) (*RedisStore, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisStore{client: client, key: "launchpad:" + Key}, nil
}

// NewRedisStoreWithClient wraps an existing client, primarily for tests.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, key: "launchpad:" + Key}
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		observability.TokenStoreErrors.WithLabelValues("save").Inc()
		return err
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		observability.TokenStoreErrors.WithLabelValues("load").Inc()
		return "", false, err
	}
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		observability.TokenStoreErrors.WithLabelValues("clear").Inc()
		return err
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
