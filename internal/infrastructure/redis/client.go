package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPingTimeout bounds the connectivity check in NewClient.
const DefaultPingTimeout = 5 * time.Second

// NewClient parses redisURL, connects and pings the server. The ping gives up
// after pingTimeout; a non-positive value uses DefaultPingTimeout.
func NewClient(ctx context.Context, redisURL string, pingTimeout time.Duration) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	if pingTimeout <= 0 {
		pingTimeout = DefaultPingTimeout
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	return client, nil
}
