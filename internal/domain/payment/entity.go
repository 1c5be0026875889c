package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount   = errors.New("payment amount cannot be negative")
	ErrAlreadyCompleted = errors.New("payment is already completed")
	ErrInvalidStatus    = errors.New("invalid payment status")
)

// Payment is created alongside its Booking in the PENDING state. The booking
// writer never completes a payment; the confirmation flow does.
type Payment struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	userID      uuid.UUID
	amountCents int64
	status      Status
	providerRef *string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewPendingPayment(bookingID, userID uuid.UUID, amountCents int64) (*Payment, error) {
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}
	return &Payment{
		id:          uuid.New(),
		bookingID:   bookingID,
		userID:      userID,
		amountCents: amountCents,
		status:      StatusPending,
	}, nil
}

func ReconstructPayment(
	id, bookingID, userID uuid.UUID,
	amountCents int64,
	status Status,
	providerRef *string,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:          id,
		bookingID:   bookingID,
		userID:      userID,
		amountCents: amountCents,
		status:      status,
		providerRef: providerRef,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Complete records the provider reference and marks the payment settled.
func (p *Payment) Complete(providerRef string) error {
	if p.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	p.status = StatusCompleted
	p.providerRef = &providerRef
	return nil
}

func (p *Payment) Fail() {
	p.status = StatusFailed
}

func (p *Payment) ID() uuid.UUID        { return p.id }
func (p *Payment) BookingID() uuid.UUID { return p.bookingID }
func (p *Payment) UserID() uuid.UUID    { return p.userID }
func (p *Payment) AmountCents() int64   { return p.amountCents }
func (p *Payment) Status() Status       { return p.status }
func (p *Payment) ProviderRef() *string { return p.providerRef }
func (p *Payment) CreatedAt() time.Time { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time { return p.updatedAt }
