package response

import (
	"time"

	"exechire/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VehicleResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Price             string    `json:"price"`
	PricePerDayCents  int64     `json:"pricePerDayCents"`
	PricePerHourCents int64     `json:"pricePerHourCents"`
	Category          string    `json:"category"`
	Specs             []string  `json:"specs"`
	Image             string    `json:"image"`
	Available         bool      `json:"available"`
	Featured          bool      `json:"featured"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func FromVehicleView(view *queries.VehicleView) *VehicleResponse {
	var resp VehicleResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromVehicleViews(views []*queries.VehicleView) []*VehicleResponse {
	resps := make([]*VehicleResponse, len(views))
	for i, view := range views {
		resps[i] = FromVehicleView(view)
	}
	return resps
}
