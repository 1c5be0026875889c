package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side validation reads.

type VehicleSnapshot struct {
	ID               uuid.UUID
	Name             string
	PricePerDayCents int64
	Category         string
	Available        bool
}

type BookingSnapshot struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	VehicleID        uuid.UUID
	Status           string
	StartDate        time.Time
	EndDate          time.Time
	TotalAmountCents int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type PaymentSnapshot struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	UserID      uuid.UUID
	Status      string
	AmountCents int64
	ProviderRef *string
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
}
