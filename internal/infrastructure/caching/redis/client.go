package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	rdb *redis.Client
}

func New(url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Client{rdb: rdb}, nil
}

func NewFromClient(rdb *redis.Client) *Client { return &Client{rdb: rdb} }

func (c *Client) Close() error { return c.rdb.Close() }

func (c *Client) GetRawClient() *redis.Client { return c.rdb }

// AllowRequest is a fixed-window counter per caller key. Redis trouble fails
// open: throttling is protection, not correctness.
func (c *Client) AllowRequest(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	k := "ratelimit:" + key
	count, err := c.rdb.Incr(ctx, k).Result()
	if err != nil {
		return true, nil
	}
	if count == 1 {
		_ = c.rdb.Expire(ctx, k, window).Err()
	}
	return count <= int64(limit), nil
}
