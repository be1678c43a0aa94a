package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout   = 5 * time.Second
	operationTimeout = time.Second
)

// Config captures the settings for the idempotency key store.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds the initial ping. Defaults to defaultTimeout.
	Timeout time.Duration
}

// Connect opens a client and fails fast if the server does not answer.
// Reads and writes are capped at operationTimeout so a slow Redis only delays
// a create by that much before the store falls back to a miss.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  operationTimeout,
		WriteTimeout: operationTimeout,
	})

	if err := Ping(ctx, client, timeout); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Ping reports whether the server answers within timeout.
func Ping(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
