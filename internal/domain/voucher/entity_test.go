//go:build unit

package voucher_test

import (
	"testing"
	"time"

	"voucher-campaign/internal/domain/voucher"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCode(t *testing.T) voucher.Code {
	t.Helper()
	code, err := voucher.GenerateCode()
	require.NoError(t, err)
	return code
}

func TestVoucherLifecycle(t *testing.T) {
	customerID := uuid.New()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("new voucher is available", func(t *testing.T) {
		v := voucher.New(uuid.New(), newCode(t))

		assert.True(t, v.Available())
		assert.False(t, v.Reserved())
		assert.False(t, v.Redeemed())
		assert.Nil(t, v.CustomerID())
		assert.Nil(t, v.LockedAt())
	})

	t.Run("reserve moves available to reserved", func(t *testing.T) {
		v := voucher.New(uuid.New(), newCode(t))

		require.NoError(t, v.Reserve(customerID, now))

		assert.True(t, v.Reserved())
		assert.False(t, v.Available())
		require.NotNil(t, v.CustomerID())
		assert.Equal(t, customerID, *v.CustomerID())
		require.NotNil(t, v.LockedAt())
		assert.Equal(t, now, *v.LockedAt())
	})

	t.Run("reserve fails on a reserved voucher", func(t *testing.T) {
		v := voucher.New(uuid.New(), newCode(t))
		require.NoError(t, v.Reserve(customerID, now))

		err := v.Reserve(uuid.New(), now)

		assert.ErrorIs(t, err, voucher.ErrNotAvailable)
	})

	t.Run("redeem requires a reservation", func(t *testing.T) {
		v := voucher.New(uuid.New(), newCode(t))

		err := v.Redeem(customerID)

		assert.ErrorIs(t, err, voucher.ErrNotReserved)
	})

	t.Run("redeem rejects another customer", func(t *testing.T) {
		v := voucher.New(uuid.New(), newCode(t))
		require.NoError(t, v.Reserve(customerID, now))

		err := v.Redeem(uuid.New())

		assert.ErrorIs(t, err, voucher.ErrWrongCustomer)
		assert.False(t, v.Redeemed())
	})

	t.Run("redeem is terminal", func(t *testing.T) {
		v := voucher.New(uuid.New(), newCode(t))
		require.NoError(t, v.Reserve(customerID, now))
		require.NoError(t, v.Redeem(customerID))

		assert.True(t, v.Redeemed())
		assert.ErrorIs(t, v.Redeem(customerID), voucher.ErrAlreadyRedeemed)
		assert.ErrorIs(t, v.Release(), voucher.ErrAlreadyRedeemed)
		assert.ErrorIs(t, v.Reserve(uuid.New(), now), voucher.ErrAlreadyRedeemed)
		require.NotNil(t, v.CustomerID())
		assert.Equal(t, customerID, *v.CustomerID())
	})

	t.Run("release returns a reserved voucher to the pool", func(t *testing.T) {
		v := voucher.New(uuid.New(), newCode(t))
		require.NoError(t, v.Reserve(customerID, now))

		require.NoError(t, v.Release())

		assert.True(t, v.Available())
		assert.Nil(t, v.CustomerID())
		assert.Nil(t, v.LockedAt())
	})
}

func TestReservationExpired(t *testing.T) {
	customerID := uuid.New()
	lockedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	window := 10 * time.Minute

	tests := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{name: "well within the window", now: lockedAt.Add(5 * time.Minute), expired: false},
		{name: "exactly at the boundary still active", now: lockedAt.Add(window), expired: false},
		{name: "just past the boundary", now: lockedAt.Add(window + time.Second), expired: true},
		{name: "long expired", now: lockedAt.Add(time.Hour), expired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := voucher.New(uuid.New(), newCode(t))
			require.NoError(t, v.Reserve(customerID, lockedAt))

			assert.Equal(t, tt.expired, v.ReservationExpired(tt.now, window))
		})
	}

	t.Run("available voucher never expires", func(t *testing.T) {
		v := voucher.New(uuid.New(), newCode(t))

		assert.False(t, v.ReservationExpired(lockedAt.Add(time.Hour), window))
	})
}
