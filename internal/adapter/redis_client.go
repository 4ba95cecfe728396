package adapter

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// GoRedisClient adapts *redis.Client to the RedisClient interface
// RedisWriter depends on. go-redis's HSet returns *redis.IntCmd; callers of
// RedisWriter only care whether the write failed, so this collapses the
// command to its error.
type GoRedisClient struct {
	rdb *redis.Client
}

// NewGoRedisClient wraps an existing go-redis client. Dial it with
// redis.NewClient(&redis.Options{Addr: ...}) before passing it in here.
func NewGoRedisClient(rdb *redis.Client) *GoRedisClient {
	return &GoRedisClient{rdb: rdb}
}

// HSet implements RedisClient.
func (c *GoRedisClient) HSet(ctx context.Context, key string, values ...any) error {
	return c.rdb.HSet(ctx, key, values...).Err()
}

var _ RedisClient = (*GoRedisClient)(nil)
