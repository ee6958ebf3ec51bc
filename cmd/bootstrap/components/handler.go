package components

import (
	"voucher-campaign/internal/handler"
	"voucher-campaign/internal/handler/api"
	"voucher-campaign/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCampaignHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
