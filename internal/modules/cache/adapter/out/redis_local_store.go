package out

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	cacheout "pti/internal/modules/cache/port/out"
)

// RedisLocalStore keeps cache entries in redis without expiry; freshness is
// tracked by the daily marker, not by TTLs.
type RedisLocalStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisLocalStore connects to a redis:// or rediss:// URL and pings it.
func NewRedisLocalStore(ctx context.Context, rawURL, prefix string) (*RedisLocalStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisLocalStore{rdb: rdb, prefix: prefix}, nil
}

var _ cacheout.LocalStore = (*RedisLocalStore)(nil)

func (s *RedisLocalStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisLocalStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisLocalStore) Remove(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *RedisLocalStore) Close() error {
	return s.rdb.Close()
}
