package storage

import (
	"context"
	"errors"
	"fmt"

	"videobrowse-service/errs"

	"github.com/redis/go-redis/v9"
)

// Redis stores items as plain string keys under a prefix.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// OpenRedis parses url, connects and pings.
func OpenRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w: %w", opts.Addr, errs.ErrStorageUnavailable, err)
	}
	return NewRedis(rdb), nil
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb, prefix: "vb:"}
}

func (r *Redis) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: get %q: %w: %w", key, errs.ErrStorageUnavailable, err)
	}
	return v, true, nil
}

func (r *Redis) SetItem(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %q: %w: %w", key, errs.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *Redis) RemoveItem(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis: remove %q: %w: %w", key, errs.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
