package bootstrap

import (
	"context"
	"time"

	"voucher-campaign/internal/infra/lease"
	"voucher-campaign/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
	),
)

const clientPingTimeout = 5 * time.Second

func NewRedisClient(lc fx.Lifecycle, cfg config.RedisConfig) (*redis.Client, error) {
	client := lease.NewRedisClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), clientPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
