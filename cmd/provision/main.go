// Command provision creates the fixed campaign voucher pool. It is run once
// before the campaign opens; the pool size never changes afterwards.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"voucher-campaign/internal/domain/voucher"
	"voucher-campaign/internal/infra/db"
	"voucher-campaign/internal/infra/repository"
	"voucher-campaign/internal/pkg/config"
)

func main() {
	count := flag.Int("count", 0, "number of vouchers to create (defaults to CAMPAIGN_POOL_SIZE)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	poolSize := cfg.Campaign.PoolSize
	if *count > 0 {
		poolSize = *count
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	codes := make([]string, 0, poolSize)
	seen := make(map[string]struct{}, poolSize)
	for len(codes) < poolSize {
		code, err := voucher.GenerateCode()
		if err != nil {
			slog.Error("failed to generate voucher code", "error", err)
			os.Exit(1)
		}
		if _, dup := seen[code.String()]; dup {
			continue
		}
		seen[code.String()] = struct{}{}
		codes = append(codes, code.String())
	}

	repo := repository.NewVoucherRepository(pool)
	if err := repo.CreateBatch(context.Background(), codes); err != nil {
		slog.Error("failed to provision vouchers", "error", err)
		os.Exit(1)
	}

	slog.Info("voucher pool provisioned", "count", poolSize)
}
