package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/m-mizutani/goerr/v2"
)

// RedisConfig holds connection settings for the redis backend
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	// Prefix is prepended to every key, e.g. "kith:"
	Prefix string
}

// Redis is a KVS stored in a redis server
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis connects to redis and verifies the connection with PING
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	if cfg.Address == "" {
		cfg.Address = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("address", cfg.Address))
	}

	return &Redis{rdb: rdb, prefix: cfg.Prefix}, nil
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.rdb.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, goerr.Wrap(err, "failed to get value from redis", goerr.V("key", key))
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return goerr.Wrap(err, "failed to set value to redis", goerr.V("key", key))
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.key(key)).Err(); err != nil {
		return goerr.Wrap(err, "failed to delete value from redis", goerr.V("key", key))
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
