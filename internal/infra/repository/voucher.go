package repository

import (
	"context"
	"time"

	"voucher-campaign/internal/domain/eligibility"
	"voucher-campaign/internal/infra"
	"voucher-campaign/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VoucherRepository is the durable voucher store. Every mutation is a single
// conditional UPDATE whose WHERE clause re-checks the expected current state;
// the reported row count decides whether the transition happened. That makes
// each call safe under concurrent access without explicit row locks.
type VoucherRepository struct {
	db *pgxpool.Pool
}

func NewVoucherRepository(db *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{db: db}
}

func (r *VoucherRepository) PoolCounts(ctx context.Context) (eligibility.PoolCounts, error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE redeemed),
			COUNT(*) FILTER (WHERE NOT redeemed AND customer_id IS NULL AND locked_at IS NULL)
		FROM vouchers`

	var counts eligibility.PoolCounts
	if err := r.db.QueryRow(ctx, query).Scan(&counts.Redeemed, &counts.Available); err != nil {
		return eligibility.PoolCounts{}, infra.WrapRepoErr("failed to count voucher pool", err)
	}
	return counts, nil
}

func (r *VoucherRepository) AvailableCodes(ctx context.Context) ([]string, error) {
	const query = `
		SELECT code FROM vouchers
		WHERE NOT redeemed AND customer_id IS NULL AND locked_at IS NULL
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available voucher codes", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, infra.WrapRepoErr("failed to scan voucher code", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read voucher codes", err)
	}

	return codes, nil
}

// FindByCustomer returns the customer's voucher regardless of its state, or
// nil when the customer owns none.
func (r *VoucherRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*usecase.VoucherSnapshot, error) {
	const query = `
		SELECT id, code, customer_id, redeemed, locked_at FROM vouchers
		WHERE customer_id = $1
		ORDER BY redeemed DESC
		LIMIT 1`

	snapshot, err := r.scanVoucher(r.db.QueryRow(ctx, query, customerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find voucher by customer", err)
	}
	return snapshot, nil
}

// FindReservedByCustomer returns the customer's unredeemed voucher, with a
// KindNotFound error when there is none.
func (r *VoucherRepository) FindReservedByCustomer(ctx context.Context, customerID uuid.UUID) (*usecase.VoucherSnapshot, error) {
	const query = `
		SELECT id, code, customer_id, redeemed, locked_at FROM vouchers
		WHERE customer_id = $1 AND NOT redeemed
		LIMIT 1`

	snapshot, err := r.scanVoucher(r.db.QueryRow(ctx, query, customerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("no reserved voucher for customer", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reserved voucher", err)
	}
	return snapshot, nil
}

// Reserve assigns the voucher to the customer only while it is still
// available. Returns false when the voucher was taken through another path
// between listing and this update.
func (r *VoucherRepository) Reserve(ctx context.Context, code string, customerID uuid.UUID, at time.Time) (bool, error) {
	const query = `
		UPDATE vouchers
		SET customer_id = $1, locked_at = $2, updated_at = now()
		WHERE code = $3 AND NOT redeemed AND customer_id IS NULL AND locked_at IS NULL`

	tag, err := r.db.Exec(ctx, query, customerID, at, code)
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve voucher", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Redeem finalizes the voucher for its reserving customer. The condition
// re-checks ownership and the unredeemed state, so redemption can never be
// applied twice or to someone else's reservation.
func (r *VoucherRepository) Redeem(ctx context.Context, id uuid.UUID, customerID uuid.UUID) (bool, error) {
	const query = `
		UPDATE vouchers
		SET redeemed = TRUE, locked_at = NULL, updated_at = now()
		WHERE id = $1 AND customer_id = $2 AND NOT redeemed`

	tag, err := r.db.Exec(ctx, query, id, customerID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to redeem voucher", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Release returns a reserved voucher to the pool. A redeemed voucher is never
// touched.
func (r *VoucherRepository) Release(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE vouchers
		SET customer_id = NULL, locked_at = NULL, updated_at = now()
		WHERE id = $1 AND NOT redeemed`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return infra.WrapRepoErr("failed to release voucher", err)
	}
	return nil
}

// ReleaseExpired clears every reservation that started before the cutoff.
// Concurrent sweeps are safe: a row stops matching once cleared.
func (r *VoucherRepository) ReleaseExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `
		UPDATE vouchers
		SET customer_id = NULL, locked_at = NULL, updated_at = now()
		WHERE NOT redeemed AND locked_at IS NOT NULL AND locked_at < $1`

	tag, err := r.db.Exec(ctx, query, before)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release expired reservations", err)
	}
	return tag.RowsAffected(), nil
}

// CreateBatch inserts provisioned vouchers. Used by the provisioning CLI.
func (r *VoucherRepository) CreateBatch(ctx context.Context, codes []string) error {
	batch := &pgx.Batch{}
	for _, code := range codes {
		batch.Queue(
			`INSERT INTO vouchers (id, code, redeemed, created_at, updated_at) VALUES ($1, $2, FALSE, now(), now())`,
			uuid.New(), code,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range codes {
		if _, err := results.Exec(); err != nil {
			return infra.WrapRepoErr("failed to insert voucher batch", err, infra.KindDuplicateKey)
		}
	}
	return nil
}

func (r *VoucherRepository) scanVoucher(row pgx.Row) (*usecase.VoucherSnapshot, error) {
	var s usecase.VoucherSnapshot
	if err := row.Scan(&s.ID, &s.Code, &s.CustomerID, &s.Redeemed, &s.LockedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
