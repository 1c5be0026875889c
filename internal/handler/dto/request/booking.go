package request

import (
	"time"

	"exechire/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	VehicleID uuid.UUID `json:"vehicle_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

func (r CreateBookingRequest) ToDateRange() (booking.DateRange, error) {
	return booking.NewDateRange(r.StartDate, r.EndDate)
}

type AvailabilityRequest struct {
	VehicleID uuid.UUID `form:"vehicle_id" binding:"required"`
	StartDate time.Time `form:"start_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate   time.Time `form:"end_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ConfirmPaymentRequest struct {
	ProviderRef string `json:"provider_ref" binding:"required"`
}
