package bootstrap

import (
	"voucher-campaign/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
		func(cfg config.Config) config.CampaignConfig { return cfg.Campaign },
	),
)
