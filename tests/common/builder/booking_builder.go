//go:build unit || e2e

package builder

import (
	"time"

	"exechire/internal/domain/booking"
	reqdto "exechire/internal/handler/dto/request"
	"exechire/internal/pkg/clock"
	"exechire/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID   uuid.UUID
	Vehicle  *VehicleBuilder
	Start    time.Time
	End      time.Time
	Now      time.Time
	Clock    clock.Clock
	PriceCal booking.PriceCalculator
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		UserID:   uuid.New(),
		Vehicle:  NewVehicleBuilder(),
		Start:    now.Add(24 * time.Hour),
		End:      now.Add(72 * time.Hour),
		Now:      now,
		PriceCal: booking.NewDailyRateCalculator(),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	vehicleEntity, err := b.Vehicle.BuildDomain()
	if err != nil {
		return nil, err
	}

	dateRange, err := booking.NewDateRange(b.Start, b.End)
	if err != nil {
		return nil, err
	}

	c := b.Clock
	if c == nil {
		c = clock.NewMockClock(b.Now)
	}

	factory := booking.NewFactory(c, b.PriceCal)
	return factory.CreateBooking(vehicleEntity, b.UserID, dateRange)
}

func (b *BookingBuilder) BuildCreateDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		VehicleID: uuid.New(),
		StartDate: b.Start,
		EndDate:   b.End,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	days := int64(b.End.Sub(b.Start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return &queries.BookingView{
		ID:               uuid.New(),
		UserID:           b.UserID,
		VehicleID:        uuid.New(),
		VehicleName:      b.Vehicle.Name,
		VehicleCategory:  b.Vehicle.Category,
		StartDate:        b.Start,
		EndDate:          b.End,
		TotalAmountCents: days * b.Vehicle.PricePerDayCents,
		Status:           "PENDING",
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithDates(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithVehicle(mutate func(*VehicleBuilder)) *BookingBuilder {
	mutate(b.Vehicle)
	return b
}
