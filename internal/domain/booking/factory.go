package booking

import (
	"exechire/internal/domain/vehicle"
	"exechire/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

func (f *Factory) CreateBooking(
	vehicleEntity *vehicle.Vehicle,
	userID uuid.UUID,
	dateRange DateRange,
) (*Booking, error) {
	if err := dateRange.ValidateNotPastAt(f.Clock.Now()); err != nil {
		return nil, err
	}

	if !vehicleEntity.IsInService() {
		return nil, ErrVehicleNotInService
	}

	totalCents := f.PriceCalculator.CalculateTotalCents(vehicleEntity, dateRange)
	if totalCents < 0 {
		return nil, ErrNegativePrice
	}

	total, err := NewMoney(totalCents)
	if err != nil {
		return nil, err
	}

	return NewBooking(userID, vehicleEntity.ID(), dateRange, total), nil
}
