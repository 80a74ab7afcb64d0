package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultOpTimeout = 3 * time.Second
	defaultPoolSize  = 10
)

// Config describes the Redis instance backing the signup lock. Zero values
// fall back to the defaults above.
type Config struct {
	Addr     string
	DB       int
	PoolSize int
	// Timeout bounds dialing, each read and each write.
	Timeout time.Duration
}

func (c Config) options() *redis.Options {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	pool := c.PoolSize
	if pool <= 0 {
		pool = defaultPoolSize
	}
	return &redis.Options{
		Addr:         c.Addr,
		DB:           c.DB,
		PoolSize:     pool,
		MinIdleConns: 1,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
}

// Connect opens a client for cfg and fails unless the server answers a PING.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := cfg.options()
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
