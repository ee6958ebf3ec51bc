package repository

import (
	"context"

	"voucher-campaign/internal/infra"
	"voucher-campaign/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*usecase.CustomerRecord, string, error) {
	const query = `
		SELECT id, email, is_active, password_hash FROM customers
		WHERE email = $1`

	var (
		record usecase.CustomerRecord
		hash   string
	)
	if err := r.db.QueryRow(ctx, query, email).Scan(&record.ID, &record.Email, &record.IsActive, &hash); err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find customer by email", err)
	}
	return &record, hash, nil
}
