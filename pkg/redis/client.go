package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var pingClient = func(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// NewClient builds a Redis client from a URL and verifies it answers PING.
// The caller owns the client and must Close it.
func NewClient(url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	if password != "" {
		opts.Password = password
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pingClient(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
