package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

// Actor identifies the requesting user for authorization on the read side.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == "ADMIN"
}

type VehicleView struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Price             string    `json:"price"`
	PricePerDayCents  int64     `json:"price_per_day_cents"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	Category          string    `json:"category"`
	Specs             []string  `json:"specs"`
	Image             string    `json:"image"`
	Available         bool      `json:"available"`
	Featured          bool      `json:"featured"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type BookingView struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	VehicleID          uuid.UUID `json:"vehicle_id"`
	VehicleName        string    `json:"vehicle_name"`
	VehicleCategory    string    `json:"vehicle_category"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	TotalAmountCents   int64     `json:"total_amount_cents"`
	Status             string    `json:"status"`
	PaymentStatus      *string   `json:"payment_status,omitempty"`
	PaymentAmountCents *int64    `json:"payment_amount_cents,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ConflictingBooking is the slice of an existing booking exposed by the
// availability check.
type ConflictingBooking struct {
	ID        uuid.UUID `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
}

type AvailabilityView struct {
	VehicleID uuid.UUID            `json:"vehicle_id"`
	Available bool                 `json:"available"`
	Conflicts []ConflictingBooking `json:"conflicts"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type NotificationView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
