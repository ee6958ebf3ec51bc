// Package lease provides the short-lived mutual-exclusion primitive used to
// serialize reservation attempts on a single voucher code. A lease is only a
// contention gate: the voucher store's conditional updates stay the source of
// truth, so losing or expiring a lease can cost extra work but never
// correctness.
package lease

import (
	"context"
	"time"

	"voucher-campaign/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "voucher:lease:"

// RedisLocker implements the lease over Redis with SET NX PX. The TTL is
// fixed at acquisition and never renewed; a crashed holder's lease simply
// expires.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, keyPrefix+key, 1, ttl).Result()
}

// Release drops the lease unconditionally. Safe when the lease has already
// expired or was never held.
func (l *RedisLocker) Release(ctx context.Context, key string) error {
	return l.client.Del(ctx, keyPrefix+key).Err()
}
