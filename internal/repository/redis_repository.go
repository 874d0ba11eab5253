package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) Repository {
	return &redisRepository{rdb: rdb}
}

func (r *redisRepository) sessionKey(key string) string { return fmt.Sprintf("session:%s", key) }

func (r *redisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.rdb.Get(ctx, r.sessionKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not read session %q: %w", key, err)
	}
	return value, nil
}

// Put stores the snapshot without expiry.
func (r *redisRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.sessionKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("could not write session %q: %w", key, err)
	}
	return nil
}

func (r *redisRepository) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.sessionKey(key)).Err(); err != nil {
		return fmt.Errorf("could not delete session %q: %w", key, err)
	}
	return nil
}

func (r *redisRepository) Close() error {
	return r.rdb.Close()
}
