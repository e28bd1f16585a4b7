package cache

import (
	"context"
	"errors"
	"strings"

	"moonmash/internal/bracket"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

// NewRedis accepts either a redis:// URL or a bare host:port address.
func NewRedis(dsn string) (*RedisStore, error) {
	var opts *redis.Options
	if strings.HasPrefix(dsn, "redis://") || strings.HasPrefix(dsn, "rediss://") {
		parsed, err := redis.ParseURL(dsn)
		if err != nil {
			return nil, err
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: dsn}
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Save(ctx context.Context, images []bracket.Image) error {
	data, err := encodeImages(images)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, SlotKey, data, 0).Err()
}

func (s *RedisStore) Load(ctx context.Context) ([]bracket.Image, error) {
	data, err := s.client.Get(ctx, SlotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeImages(data)
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, SlotKey).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
