package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisBackend stores values as plain Redis strings.
type RedisBackend struct {
	client *redis.Client
}

// OpenRedis connects to the server described by url, e.g.
// redis://127.0.0.1:6379/1.
func OpenRedis(ctx context.Context, url string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return &RedisBackend{client: client}, nil
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}
	return v, nil
}

func (r *RedisBackend) Put(ctx context.Context, key string, value []byte) error {
	return errors.Wrap(r.client.Set(ctx, key, value, 0).Err(), "redis set")
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	return errors.Wrap(r.client.Del(ctx, key).Err(), "redis del")
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}
