// Package cache holds the Redis connection shared by the bale listing cache
// and the warehouse selection session store.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/baleyard/pkg/config"
)

const (
	defaultPoolSize = 10
	connectTimeout  = 2 * time.Second
)

// RedisClient owns one go-redis connection pool.
type RedisClient struct {
	client *redis.Client
}

// clientOptions turns REDIS_URL and the pool settings into go-redis options.
// REDIS_POOL_SIZE, when set, overrides a pool_size in the URL.
func clientOptions(cfg *config.Config) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.ClientName == "" {
		opts.ClientName = cfg.ServiceName
	}
	if cfg.RedisPoolSize > 0 {
		opts.PoolSize = cfg.RedisPoolSize
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = defaultPoolSize
	}
	opts.MinIdleConns = max(opts.MinIdleConns, 2)
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	// Listing reads are on the load path of a drag session; fail fast and
	// fall back to PostgreSQL.
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second
	opts.PoolTimeout = 2 * time.Second
	return opts, nil
}

// NewRedisClient connects and pings within connectTimeout.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*RedisClient, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return &RedisClient{client: rdb}, nil
}

// Ping checks the connection.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close shuts the pool down.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the pool, e.g. for the session store.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
