package components

import (
	"voucher-campaign/internal/pkg/clock"
	"voucher-campaign/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewCampaignUseCase,
		usecase.NewAuthUseCase,
		usecase.NewTokenValidator,
	),
)
