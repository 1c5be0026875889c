package response

import (
	"time"

	"exechire/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"userId"`
	VehicleID          uuid.UUID `json:"vehicleId"`
	VehicleName        string    `json:"vehicleName"`
	VehicleCategory    string    `json:"vehicleCategory"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	TotalAmountCents   int64     `json:"totalAmountCents"`
	Status             string    `json:"status"`
	PaymentStatus      *string   `json:"paymentStatus,omitempty"`
	PaymentAmountCents *int64    `json:"paymentAmountCents,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type AvailabilityResponse struct {
	VehicleID uuid.UUID          `json:"vehicleId"`
	Available bool               `json:"available"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

type ConflictResponse struct {
	ID        uuid.UUID `json:"id"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	resps := make([]*BookingResponse, len(views))
	for i, view := range views {
		resps[i] = FromBookingView(view)
	}
	return resps
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	resp := AvailabilityResponse{
		VehicleID: view.VehicleID,
		Available: view.Available,
		Conflicts: make([]ConflictResponse, len(view.Conflicts)),
	}
	for i, c := range view.Conflicts {
		_ = copier.Copy(&resp.Conflicts[i], &c)
	}
	return &resp
}
