package repository

import (
	"context"

	"exechire/internal/domain/booking"
	"exechire/internal/infra"
	"exechire/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

// LockVehicle takes a transaction-scoped advisory lock keyed by the vehicle
// UUID. Concurrent booking attempts for the same vehicle queue here, so the
// conflict re-check after this call sees every committed booking.
func (r *BookingRepository) LockVehicle(ctx context.Context, tx db.DBTX, vehicleID uuid.UUID) error {
	const query = `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`

	if _, err := tx.Exec(ctx, query, vehicleID); err != nil {
		return infra.WrapRepoErr("failed to acquire vehicle lock", err)
	}
	return nil
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (
			id, user_id, vehicle_id, start_date, end_date,
			total_amount_cents, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id
	`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		b.ID(), b.UserID(), b.VehicleID(),
		b.DateRange().Start(), b.DateRange().End(),
		b.TotalAmount().Cents(), b.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return id, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, bookingID uuid.UUID, status booking.Status) error {
	const query = `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, bookingID, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}
