//go:build unit

package booking_test

import (
	"testing"
	"time"

	"exechire/internal/domain/booking"
	"exechire/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		// 48時間 × R18,000/日 = R36,000
		assert.Equal(t, int64(3600000), actual.TotalAmount().Cents())
	})

	t.Run("過去開始日NG", func(t *testing.T) {
		now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
		actual, err := builder.NewBookingBuilder().
			WithNow(now).
			WithDates(now.Add(-time.Hour), now.Add(24*time.Hour)).
			BuildDomain()

		require.Nil(t, actual)
		require.ErrorIs(t, err, booking.ErrStartInPast)
	})

	t.Run("整備外車両NG", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			WithVehicle(func(v *builder.VehicleBuilder) { v.AsUnavailable() }).
			BuildDomain()

		require.Nil(t, actual)
		require.ErrorIs(t, err, booking.ErrVehicleNotInService)
	})

	t.Run("端数日は切り上げ課金", func(t *testing.T) {
		now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
		actual, err := builder.NewBookingBuilder().
			WithNow(now).
			WithDates(now.Add(24*time.Hour), now.Add(26*time.Hour)).
			BuildDomain()

		require.NoError(t, err)
		// 2時間でも1日分
		assert.Equal(t, int64(1800000), actual.TotalAmount().Cents())
	})

	t.Run("ステータス遷移", func(t *testing.T) {
		cases := []struct {
			name  string
			from  booking.Status
			to    booking.Status
			errIs error
		}{
			{name: "PENDING→CONFIRMED OK", from: booking.StatusPending, to: booking.StatusConfirmed},
			{name: "PENDING→CANCELLED OK", from: booking.StatusPending, to: booking.StatusCancelled},
			{name: "CONFIRMED→CANCELLED OK", from: booking.StatusConfirmed, to: booking.StatusCancelled},
			{name: "CONFIRMED→COMPLETED OK", from: booking.StatusConfirmed, to: booking.StatusCompleted},
			{name: "PENDING→COMPLETED NG", from: booking.StatusPending, to: booking.StatusCompleted, errIs: booking.ErrInvalidTransition},
			{name: "CANCELLED→CONFIRMED NG", from: booking.StatusCancelled, to: booking.StatusConfirmed, errIs: booking.ErrInvalidTransition},
			{name: "COMPLETED→CANCELLED NG", from: booking.StatusCompleted, to: booking.StatusCancelled, errIs: booking.ErrInvalidTransition},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				b := reconstructWithStatus(t, c.from)
				err := b.TransitionTo(c.to)
				if c.errIs == nil {
					require.NoError(t, err)
					assert.Equal(t, c.to, b.Status())
				} else {
					require.ErrorIs(t, err, c.errIs)
					assert.Equal(t, c.from, b.Status())
				}
			})
		}
	})

	t.Run("キャンセルは冪等", func(t *testing.T) {
		b := reconstructWithStatus(t, booking.StatusPending)

		require.NoError(t, b.Cancel())
		assert.Equal(t, booking.StatusCancelled, b.Status())

		// 2回目もエラーなし
		require.NoError(t, b.Cancel())
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("完了済みはキャンセル不可", func(t *testing.T) {
		b := reconstructWithStatus(t, booking.StatusCompleted)
		require.ErrorIs(t, b.Cancel(), booking.ErrBookingCompleted)
	})

	t.Run("ブロック判定はステータス依存", func(t *testing.T) {
		assert.True(t, booking.StatusPending.IsBlocking())
		assert.True(t, booking.StatusConfirmed.IsBlocking())
		assert.False(t, booking.StatusCancelled.IsBlocking())
		assert.False(t, booking.StatusCompleted.IsBlocking())
	})

	t.Run("キャンセル済み予約は衝突しない", func(t *testing.T) {
		b := reconstructWithStatus(t, booking.StatusCancelled)

		same := b.DateRange()
		assert.False(t, b.ConflictsWith(same))
	})
}

func reconstructWithStatus(t *testing.T, status booking.Status) *booking.Booking {
	t.Helper()

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	r, err := booking.NewDateRange(start, start.Add(48*time.Hour))
	require.NoError(t, err)

	total, err := booking.NewMoney(3600000)
	require.NoError(t, err)

	now := time.Now()
	return booking.ReconstructBooking(
		uuid.New(), uuid.New(), uuid.New(),
		r, total, status, now, now,
	)
}
