package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyRedeemed = errors.New("voucher has already been redeemed")
	ErrNotAvailable    = errors.New("voucher is not available")
	ErrNotReserved     = errors.New("voucher is not reserved")
	ErrWrongCustomer   = errors.New("voucher is reserved by another customer")
)

// Voucher moves through a strict lifecycle:
//
//	available -> reserved -> redeemed (terminal)
//	                      -> available (reservation expired or verification failed)
//
// A voucher is available iff it is not redeemed and carries neither a
// customer nor a reservation timestamp. Redemption is irreversible.
type Voucher struct {
	id         uuid.UUID
	code       Code
	customerID *uuid.UUID
	redeemed   bool
	lockedAt   *time.Time
}

func New(id uuid.UUID, code Code) *Voucher {
	return &Voucher{
		id:   id,
		code: code,
	}
}

// Restore rebuilds a voucher from persisted state without transition checks.
func Restore(id uuid.UUID, code Code, customerID *uuid.UUID, redeemed bool, lockedAt *time.Time) *Voucher {
	return &Voucher{
		id:         id,
		code:       code,
		customerID: customerID,
		redeemed:   redeemed,
		lockedAt:   lockedAt,
	}
}

func (v *Voucher) Available() bool {
	return !v.redeemed && v.customerID == nil && v.lockedAt == nil
}

func (v *Voucher) Reserved() bool {
	return !v.redeemed && v.customerID != nil && v.lockedAt != nil
}

func (v *Voucher) Reserve(customerID uuid.UUID, at time.Time) error {
	if v.redeemed {
		return ErrAlreadyRedeemed
	}
	if !v.Available() {
		return ErrNotAvailable
	}
	v.customerID = &customerID
	v.lockedAt = &at
	return nil
}

func (v *Voucher) Redeem(customerID uuid.UUID) error {
	if v.redeemed {
		return ErrAlreadyRedeemed
	}
	if !v.Reserved() {
		return ErrNotReserved
	}
	if *v.customerID != customerID {
		return ErrWrongCustomer
	}
	v.redeemed = true
	v.lockedAt = nil
	return nil
}

func (v *Voucher) Release() error {
	if v.redeemed {
		return ErrAlreadyRedeemed
	}
	v.customerID = nil
	v.lockedAt = nil
	return nil
}

// ReservationExpired reports whether the current reservation started more
// than leaseWindow ago. The boundary itself still counts as active.
func (v *Voucher) ReservationExpired(now time.Time, leaseWindow time.Duration) bool {
	if !v.Reserved() {
		return false
	}
	return now.Sub(*v.lockedAt) > leaseWindow
}

func (v *Voucher) ID() uuid.UUID          { return v.id }
func (v *Voucher) Code() Code             { return v.code }
func (v *Voucher) CustomerID() *uuid.UUID { return v.customerID }
func (v *Voucher) Redeemed() bool         { return v.redeemed }
func (v *Voucher) LockedAt() *time.Time   { return v.lockedAt }
