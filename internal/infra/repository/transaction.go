package repository

import (
	"context"
	"time"

	"voucher-campaign/internal/domain/eligibility"
	"voucher-campaign/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository reads the append-only purchase history. The campaign
// only ever aggregates it, so there are no write paths here.
type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// SpendSummary returns the customer's lifetime transaction count and the sum
// of amounts spent from windowStart onwards.
func (r *TransactionRepository) SpendSummary(ctx context.Context, customerID uuid.UUID, windowStart time.Time) (eligibility.SpendSummary, error) {
	const query = `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_spent) FILTER (WHERE transaction_at >= $2), 0)
		FROM purchase_transactions
		WHERE customer_id = $1`

	var summary eligibility.SpendSummary
	if err := r.db.QueryRow(ctx, query, customerID, windowStart).Scan(&summary.LifetimeCount, &summary.WindowSpend); err != nil {
		return eligibility.SpendSummary{}, infra.WrapRepoErr("failed to summarize purchase transactions", err)
	}
	return summary, nil
}
