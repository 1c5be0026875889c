//go:build unit || e2e

package builder

import (
	"exechire/internal/domain/vehicle"

	"github.com/google/uuid"
)

type VehicleBuilder struct {
	ID                uuid.UUID
	Name              string
	Price             string
	PricePerDayCents  int64
	PricePerHourCents int64
	Category          string
	Specs             []string
	Image             string
	Available         bool
	Featured          bool
}

func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		ID:                uuid.New(),
		Name:              "Lamborghini Urus",
		Price:             "R18,000",
		PricePerDayCents:  1800000,
		PricePerHourCents: 150000,
		Category:          "LUXURY",
		Specs:             []string{"650 HP", "0-100 in 3.6s", "AWD"},
		Image:             "/vehicles/urus.jpg",
		Available:         true,
		Featured:          true,
	}
}

func (v *VehicleBuilder) With(mutate func(*VehicleBuilder)) *VehicleBuilder {
	mutate(v)
	return v
}

func (v *VehicleBuilder) BuildDomain() (*vehicle.Vehicle, error) {
	category, err := vehicle.NewCategory(v.Category)
	if err != nil {
		return nil, err
	}

	return vehicle.NewVehicle(
		v.ID, v.Name, v.Price,
		v.PricePerDayCents, v.PricePerHourCents,
		category, v.Specs, v.Image,
		v.Available, v.Featured,
	)
}

// Fluent builder methods
func (v *VehicleBuilder) WithName(name string) *VehicleBuilder {
	v.Name = name
	return v
}

func (v *VehicleBuilder) WithPricePerDayCents(cents int64) *VehicleBuilder {
	v.PricePerDayCents = cents
	return v
}

func (v *VehicleBuilder) WithCategory(category string) *VehicleBuilder {
	v.Category = category
	return v
}

func (v *VehicleBuilder) AsUnavailable() *VehicleBuilder {
	v.Available = false
	return v
}
