package booking

import (
	"exechire/internal/domain/vehicle"
)

// PriceCalculator derives the total server-side; a client-supplied amount is
// never trusted for money-bearing flows.
type PriceCalculator interface {
	CalculateTotalCents(v *vehicle.Vehicle, r DateRange) int64
}

type DailyRateCalculator struct{}

func NewDailyRateCalculator() *DailyRateCalculator {
	return &DailyRateCalculator{}
}

func (pc *DailyRateCalculator) CalculateTotalCents(v *vehicle.Vehicle, r DateRange) int64 {
	return r.Days() * v.PricePerDayCents()
}
