//go:build unit

package eligibility_test

import (
	"testing"
	"time"

	"voucher-campaign/internal/domain/eligibility"

	"github.com/stretchr/testify/assert"
)

var defaultRules = eligibility.Rules{
	PoolSize:            1000,
	LeaseWindow:         10 * time.Minute,
	MinTransactionCount: 3,
	MinSpendAmount:      100,
}

func lockedAt(t time.Time) *time.Time { return &t }

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

	healthyPool := eligibility.PoolCounts{Redeemed: 10, Available: 200}
	qualifyingSpend := eligibility.SpendSummary{LifetimeCount: 3, WindowSpend: 120}

	tests := []struct {
		name    string
		pool    eligibility.PoolCounts
		held    *eligibility.HeldVoucher
		spend   eligibility.SpendSummary
		verdict eligibility.Verdict
	}{
		{
			name:    "pool fully redeemed",
			pool:    eligibility.PoolCounts{Redeemed: 1000, Available: 0},
			spend:   qualifyingSpend,
			verdict: eligibility.VerdictAllRedeemed,
		},
		{
			name:    "pool fully claimed",
			pool:    eligibility.PoolCounts{Redeemed: 100, Available: 0},
			spend:   qualifyingSpend,
			verdict: eligibility.VerdictAllClaimed,
		},
		{
			name:    "customer already redeemed",
			pool:    healthyPool,
			held:    &eligibility.HeldVoucher{Redeemed: true},
			spend:   qualifyingSpend,
			verdict: eligibility.VerdictAlreadyRedeemed,
		},
		{
			name:    "reservation five minutes old",
			pool:    healthyPool,
			held:    &eligibility.HeldVoucher{LockedAt: lockedAt(now.Add(-5 * time.Minute))},
			spend:   qualifyingSpend,
			verdict: eligibility.VerdictReservationActive,
		},
		{
			name:    "reservation exactly at the lease window is still active",
			pool:    healthyPool,
			held:    &eligibility.HeldVoucher{LockedAt: lockedAt(now.Add(-10 * time.Minute))},
			spend:   qualifyingSpend,
			verdict: eligibility.VerdictReservationActive,
		},
		{
			name:    "expired reservation falls through to transaction rules",
			pool:    healthyPool,
			held:    &eligibility.HeldVoucher{LockedAt: lockedAt(now.Add(-11 * time.Minute))},
			spend:   eligibility.SpendSummary{LifetimeCount: 0},
			verdict: eligibility.VerdictInsufficientTransactionCount,
		},
		{
			name:    "expired reservation with qualifying history is eligible again",
			pool:    healthyPool,
			held:    &eligibility.HeldVoucher{LockedAt: lockedAt(now.Add(-11 * time.Minute))},
			spend:   qualifyingSpend,
			verdict: eligibility.VerdictEligible,
		},
		{
			name:    "two lifetime transactions",
			pool:    healthyPool,
			spend:   eligibility.SpendSummary{LifetimeCount: 2, WindowSpend: 500},
			verdict: eligibility.VerdictInsufficientTransactionCount,
		},
		{
			name:    "three transactions summing to forty",
			pool:    healthyPool,
			spend:   eligibility.SpendSummary{LifetimeCount: 3, WindowSpend: 40},
			verdict: eligibility.VerdictInsufficientTransactionAmount,
		},
		{
			name:    "spend exactly at the threshold qualifies",
			pool:    healthyPool,
			spend:   eligibility.SpendSummary{LifetimeCount: 3, WindowSpend: 100},
			verdict: eligibility.VerdictEligible,
		},
		{
			name:    "qualifying customer",
			pool:    healthyPool,
			spend:   qualifyingSpend,
			verdict: eligibility.VerdictEligible,
		},
		{
			name:    "pool exhaustion outranks already redeemed",
			pool:    eligibility.PoolCounts{Redeemed: 1000, Available: 0},
			held:    &eligibility.HeldVoucher{Redeemed: true},
			spend:   qualifyingSpend,
			verdict: eligibility.VerdictAllRedeemed,
		},
		{
			name:    "active reservation outranks transaction rules",
			pool:    healthyPool,
			held:    &eligibility.HeldVoucher{LockedAt: lockedAt(now.Add(-time.Minute))},
			spend:   eligibility.SpendSummary{LifetimeCount: 0},
			verdict: eligibility.VerdictReservationActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := eligibility.Evaluate(defaultRules, tt.pool, tt.held, tt.spend, now)
			assert.Equal(t, tt.verdict, verdict)
		})
	}
}

func TestVerdictEligible(t *testing.T) {
	assert.True(t, eligibility.VerdictEligible.Eligible())
	assert.True(t, eligibility.VerdictReservationActive.Eligible())
	assert.False(t, eligibility.VerdictAllRedeemed.Eligible())
	assert.False(t, eligibility.VerdictAllClaimed.Eligible())
	assert.False(t, eligibility.VerdictAlreadyRedeemed.Eligible())
	assert.False(t, eligibility.VerdictInsufficientTransactionCount.Eligible())
	assert.False(t, eligibility.VerdictInsufficientTransactionAmount.Eligible())
}

func TestSpendWindowStart(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 30, 45, 123, time.UTC)

	start := eligibility.SpendWindowStart(now, 30)

	assert.Equal(t, time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC), start)
}
