package usecase

import (
	"context"
	"log/slog"
	"time"

	"voucher-campaign/internal/domain/eligibility"
	"voucher-campaign/internal/infra"
	"voucher-campaign/internal/pkg/clock"
	"voucher-campaign/internal/pkg/config"
	"voucher-campaign/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNoActiveReservation = errs.New("no active reservation")
	ErrVoucherStoreFailed  = errs.New("voucher store operation failed")
	ErrVerificationFailed  = errs.New("photo verification could not be performed")
)

// VoucherSnapshot is a read model of a single voucher row.
type VoucherSnapshot struct {
	ID         uuid.UUID
	Code       string
	CustomerID *uuid.UUID
	Redeemed   bool
	LockedAt   *time.Time
}

// VoucherRepository is the voucher store port. Reserve and Redeem are
// conditional updates and report whether the transition applied; they are the
// sole correctness mechanism for exclusive voucher ownership.
type VoucherRepository interface {
	PoolCounts(ctx context.Context) (eligibility.PoolCounts, error)
	AvailableCodes(ctx context.Context) ([]string, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*VoucherSnapshot, error)
	FindReservedByCustomer(ctx context.Context, customerID uuid.UUID) (*VoucherSnapshot, error)
	Reserve(ctx context.Context, code string, customerID uuid.UUID, at time.Time) (bool, error)
	Redeem(ctx context.Context, id uuid.UUID, customerID uuid.UUID) (bool, error)
	Release(ctx context.Context, id uuid.UUID) error
	ReleaseExpired(ctx context.Context, before time.Time) (int64, error)
}

type TransactionRepository interface {
	SpendSummary(ctx context.Context, customerID uuid.UUID, windowStart time.Time) (eligibility.SpendSummary, error)
}

// Locker is the reservation lease port. Acquire must not block on
// contention: it reports false immediately so the caller can move to the
// next candidate.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type PhotoVerifier interface {
	Verify(ctx context.Context, image []byte) (bool, error)
}

type EligibilityResult struct {
	Eligible bool
	Verdict  eligibility.Verdict
}

type ValidationResult struct {
	Verified bool
	Code     string
}

type CampaignUseCase interface {
	CheckEligibility(ctx context.Context, customerID uuid.UUID) (*EligibilityResult, error)
	ValidatePhoto(ctx context.Context, customerID uuid.UUID, image []byte) (*ValidationResult, error)
}

type campaignUseCaseImpl struct {
	vouchers     VoucherRepository
	transactions TransactionRepository
	locker       Locker
	verifier     PhotoVerifier
	rules        eligibility.Rules
	windowDays   int
	clock        clock.Clock
}

func NewCampaignUseCase(
	vouchers VoucherRepository,
	transactions TransactionRepository,
	locker Locker,
	verifier PhotoVerifier,
	cfg config.CampaignConfig,
	clock clock.Clock,
) CampaignUseCase {
	return &campaignUseCaseImpl{
		vouchers:     vouchers,
		transactions: transactions,
		locker:       locker,
		verifier:     verifier,
		rules: eligibility.Rules{
			PoolSize:            cfg.PoolSize,
			LeaseWindow:         cfg.LeaseWindow,
			MinTransactionCount: cfg.MinTransactionCount,
			MinSpendAmount:      cfg.MinSpendAmount,
		},
		windowDays: cfg.SpendWindowDays,
		clock:      clock,
	}
}

// CheckEligibility sweeps expired reservations, evaluates the rule chain and,
// when the customer qualifies, reserves exactly one available voucher.
func (u *campaignUseCaseImpl) CheckEligibility(ctx context.Context, customerID uuid.UUID) (*EligibilityResult, error) {
	now := u.clock.Now()
	u.reapExpired(ctx, now)

	verdict, err := u.evaluate(ctx, customerID, now)
	if err != nil {
		return nil, err
	}

	if verdict == eligibility.VerdictEligible {
		verdict = u.allocate(ctx, customerID, now)
	}

	return &EligibilityResult{
		Eligible: verdict.Eligible(),
		Verdict:  verdict,
	}, nil
}

// ValidatePhoto finalizes the customer's pending reservation: commit on a
// verified photo, release the voucher back to the pool otherwise.
func (u *campaignUseCaseImpl) ValidatePhoto(ctx context.Context, customerID uuid.UUID, image []byte) (*ValidationResult, error) {
	u.reapExpired(ctx, u.clock.Now())

	snapshot, err := u.vouchers.FindReservedByCustomer(ctx, customerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNoActiveReservation
		}
		return nil, errs.Mark(err, ErrVoucherStoreFailed)
	}

	// The lease already served its purpose during allocation; drop it so the
	// key does not linger until TTL expiry.
	if err := u.locker.Release(ctx, snapshot.Code); err != nil {
		slog.Warn("failed to release voucher lease", "code", snapshot.Code, "error", err)
	}

	verified, err := u.verifier.Verify(ctx, image)
	if err != nil {
		return nil, errs.Mark(err, ErrVerificationFailed)
	}

	if !verified {
		if err := u.vouchers.Release(ctx, snapshot.ID); err != nil {
			return nil, errs.Mark(err, ErrVoucherStoreFailed)
		}
		return &ValidationResult{Verified: false}, nil
	}

	redeemed, err := u.vouchers.Redeem(ctx, snapshot.ID, customerID)
	if err != nil {
		return nil, errs.Mark(err, ErrVoucherStoreFailed)
	}
	if !redeemed {
		// The reservation lapsed between lookup and commit (reaped by a
		// concurrent request). The customer has to requalify.
		return nil, ErrNoActiveReservation
	}

	return &ValidationResult{Verified: true, Code: snapshot.Code}, nil
}

func (u *campaignUseCaseImpl) evaluate(ctx context.Context, customerID uuid.UUID, now time.Time) (eligibility.Verdict, error) {
	counts, err := u.vouchers.PoolCounts(ctx)
	if err != nil {
		return 0, errs.Mark(err, ErrVoucherStoreFailed)
	}

	held, err := u.heldVoucher(ctx, customerID)
	if err != nil {
		return 0, err
	}

	windowStart := eligibility.SpendWindowStart(now, u.windowDays)
	spend, err := u.transactions.SpendSummary(ctx, customerID, windowStart)
	if err != nil {
		return 0, errs.Mark(err, ErrVoucherStoreFailed)
	}

	return eligibility.Evaluate(u.rules, counts, held, spend, now), nil
}

// allocate traverses the available codes in stable order, taking the first
// voucher whose lease it wins and whose conditional reserve applies. Lease
// contention is never an error: the attempt moves straight to the next
// candidate. An exhausted traversal degrades to the all-claimed verdict.
func (u *campaignUseCaseImpl) allocate(ctx context.Context, customerID uuid.UUID, now time.Time) eligibility.Verdict {
	codes, err := u.vouchers.AvailableCodes(ctx)
	if err != nil {
		slog.Error("failed to list available vouchers", "error", err)
		return eligibility.VerdictAllClaimed
	}

	for _, code := range codes {
		acquired, err := u.locker.Acquire(ctx, code, u.rules.LeaseWindow)
		if err != nil {
			slog.Error("lease acquisition failed", "code", code, "error", err)
			return eligibility.VerdictAllClaimed
		}
		if !acquired {
			continue
		}

		reserved, err := u.vouchers.Reserve(ctx, code, customerID, now)
		if err != nil {
			slog.Error("voucher reservation failed", "code", code, "error", err)
			_ = u.locker.Release(ctx, code)
			return eligibility.VerdictAllClaimed
		}
		if reserved {
			slog.Info("voucher reserved", "customer_id", customerID, "code", code)
			return eligibility.VerdictEligible
		}

		// Lost the race between listing and the conditional update; drop the
		// lease and move to the next candidate.
		_ = u.locker.Release(ctx, code)
	}

	return eligibility.VerdictAllClaimed
}

func (u *campaignUseCaseImpl) heldVoucher(ctx context.Context, customerID uuid.UUID) (*eligibility.HeldVoucher, error) {
	snapshot, err := u.vouchers.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, errs.Mark(err, ErrVoucherStoreFailed)
	}
	if snapshot == nil {
		return nil, nil
	}
	return &eligibility.HeldVoucher{
		Redeemed: snapshot.Redeemed,
		LockedAt: snapshot.LockedAt,
	}, nil
}

// reapExpired is the request-triggered sweep. Failures are logged, not
// surfaced: a sweep that did not run only delays reclamation until the next
// request.
func (u *campaignUseCaseImpl) reapExpired(ctx context.Context, now time.Time) {
	cutoff := now.Add(-u.rules.LeaseWindow)
	released, err := u.vouchers.ReleaseExpired(ctx, cutoff)
	if err != nil {
		slog.Error("stale reservation sweep failed", "error", err)
		return
	}
	if released > 0 {
		slog.Info("released expired reservations", "count", released)
	}
}
