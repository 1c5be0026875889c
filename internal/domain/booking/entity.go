package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus       = errors.New("invalid booking status")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
	ErrBookingCompleted    = errors.New("booking is already completed")
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrVehicleNotInService = errors.New("vehicle is not in service")
)

type Booking struct {
	id          uuid.UUID
	userID      uuid.UUID
	vehicleID   uuid.UUID
	dateRange   DateRange
	totalAmount Money
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewBooking(userID, vehicleID uuid.UUID, dateRange DateRange, totalAmount Money) *Booking {
	return &Booking{
		id:          uuid.New(),
		userID:      userID,
		vehicleID:   vehicleID,
		dateRange:   dateRange,
		totalAmount: totalAmount,
		status:      StatusPending,
	}
}

func ReconstructBooking(
	id, userID, vehicleID uuid.UUID,
	dateRange DateRange,
	totalAmount Money,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		userID:      userID,
		vehicleID:   vehicleID,
		dateRange:   dateRange,
		totalAmount: totalAmount,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// TransitionTo enforces the lifecycle state machine.
func (b *Booking) TransitionTo(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

// Cancel is idempotent: cancelling an already-cancelled booking is a no-op.
func (b *Booking) Cancel() error {
	if b.status == StatusCancelled {
		return nil
	}
	if b.status == StatusCompleted {
		return ErrBookingCompleted
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) Confirm() error {
	return b.TransitionTo(StatusConfirmed)
}

func (b *Booking) IsBlocking() bool {
	return b.status.IsBlocking()
}

func (b *Booking) ConflictsWith(r DateRange) bool {
	return b.IsBlocking() && b.dateRange.Overlaps(r)
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) VehicleID() uuid.UUID { return b.vehicleID }
func (b *Booking) DateRange() DateRange { return b.dateRange }
func (b *Booking) TotalAmount() Money   { return b.totalAmount }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
