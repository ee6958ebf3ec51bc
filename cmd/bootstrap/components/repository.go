package components

import (
	"voucher-campaign/internal/infra/lease"
	"voucher-campaign/internal/infra/recognition"
	"voucher-campaign/internal/infra/repository"
	"voucher-campaign/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewVoucherRepository,
			fx.As(new(usecase.VoucherRepository)),
		),
		fx.Annotate(
			repository.NewTransactionRepository,
			fx.As(new(usecase.TransactionRepository)),
		),
		fx.Annotate(
			repository.NewCustomerRepository,
			fx.As(new(usecase.CustomerRepository)),
		),
		fx.Annotate(
			lease.NewRedisLocker,
			fx.As(new(usecase.Locker)),
		),
		fx.Annotate(
			recognition.NewClient,
			fx.As(new(usecase.PhotoVerifier)),
		),
	),
)
