// Package eligibility decides whether a customer may claim a campaign
// voucher. Evaluation is a pure function over pool counters, the customer's
// currently held voucher (if any) and their purchase history; it performs no
// I/O and never mutates state.
package eligibility

import "time"

type Verdict int

// Verdicts in evaluation order. The first matching rule wins.
const (
	VerdictAllRedeemed Verdict = iota
	VerdictAllClaimed
	VerdictAlreadyRedeemed
	VerdictReservationActive
	VerdictInsufficientTransactionCount
	VerdictInsufficientTransactionAmount
	VerdictEligible
)

func (v Verdict) Eligible() bool {
	return v == VerdictEligible || v == VerdictReservationActive
}

func (v Verdict) String() string {
	switch v {
	case VerdictAllRedeemed:
		return "all_redeemed"
	case VerdictAllClaimed:
		return "all_claimed"
	case VerdictAlreadyRedeemed:
		return "already_redeemed"
	case VerdictReservationActive:
		return "reservation_active"
	case VerdictInsufficientTransactionCount:
		return "insufficient_transaction_count"
	case VerdictInsufficientTransactionAmount:
		return "insufficient_transaction_amount"
	case VerdictEligible:
		return "eligible"
	}
	return "unknown"
}

// PoolCounts are aggregate counters over the voucher pool.
type PoolCounts struct {
	Redeemed  int64
	Available int64
}

// HeldVoucher is the customer's existing voucher, when they have one.
type HeldVoucher struct {
	Redeemed bool
	LockedAt *time.Time
}

// SpendSummary aggregates the customer's purchase transactions.
// LifetimeCount counts all transactions; WindowSpend sums amounts from the
// configured trailing window onwards.
type SpendSummary struct {
	LifetimeCount int64
	WindowSpend   float64
}

// Rules are the campaign thresholds the evaluator applies.
type Rules struct {
	PoolSize            int
	LeaseWindow         time.Duration
	MinTransactionCount int64
	MinSpendAmount      float64
}

// Evaluate runs the rule chain in strict order:
//
//  1. the pool is permanently exhausted (every voucher redeemed)
//  2. the pool is temporarily exhausted (no voucher currently available)
//  3. the customer already redeemed a voucher
//  4. the customer holds a live reservation (age <= lease window, boundary
//     inclusive) and should proceed straight to validation
//  5. fewer than the minimum lifetime transactions
//  6. trailing-window spend below the minimum amount
//  7. eligible
//
// A held reservation older than the lease window falls through to the
// transaction rules: the reaper returns it to the pool and the customer
// requalifies from scratch.
func Evaluate(rules Rules, pool PoolCounts, held *HeldVoucher, spend SpendSummary, now time.Time) Verdict {
	if pool.Redeemed >= int64(rules.PoolSize) {
		return VerdictAllRedeemed
	}
	if pool.Available < 1 {
		return VerdictAllClaimed
	}

	if held != nil {
		if held.Redeemed {
			return VerdictAlreadyRedeemed
		}
		if held.LockedAt != nil && now.Sub(*held.LockedAt) <= rules.LeaseWindow {
			return VerdictReservationActive
		}
	}

	if spend.LifetimeCount < rules.MinTransactionCount {
		return VerdictInsufficientTransactionCount
	}
	if spend.WindowSpend < rules.MinSpendAmount {
		return VerdictInsufficientTransactionAmount
	}

	return VerdictEligible
}

// SpendWindowStart returns the start of the trailing spend window: now minus
// the window length, truncated to the start of that day.
func SpendWindowStart(now time.Time, windowDays int) time.Time {
	start := now.AddDate(0, 0, -windowDays)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
}
