package vehicle

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyVehicleName   = errors.New("vehicle name cannot be empty")
	ErrVehicleNameTooLong = errors.New("vehicle name is too long (max 255 characters)")
	ErrNegativeRate       = errors.New("rental rate cannot be negative")
	ErrInvalidCategory    = errors.New("invalid vehicle category")
)

const (
	MaxVehicleNameLength = 255
)

// Vehicle is a rentable asset. The available flag is a coarse on/off switch
// ("pulled from service"), independent of date-based booking conflicts.
type Vehicle struct {
	id                uuid.UUID
	name              string
	price             string // display string, e.g. "R18,000"
	pricePerDayCents  int64
	pricePerHourCents int64
	category          Category
	specs             []string
	image             string
	available         bool
	featured          bool
	createdAt         time.Time
	updatedAt         time.Time
}

func NewVehicle(id uuid.UUID, name, price string, pricePerDayCents, pricePerHourCents int64, category Category, specs []string, image string, available, featured bool) (*Vehicle, error) {
	if err := validateVehicleName(name); err != nil {
		return nil, err
	}
	if pricePerDayCents < 0 || pricePerHourCents < 0 {
		return nil, ErrNegativeRate
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	return &Vehicle{
		id:                id,
		name:              strings.TrimSpace(name),
		price:             price,
		pricePerDayCents:  pricePerDayCents,
		pricePerHourCents: pricePerHourCents,
		category:          category,
		specs:             specs,
		image:             image,
		available:         available,
		featured:          featured,
	}, nil
}

// IsInService reports the coarse availability flag only; date conflicts are a
// separate signal checked against the booking ledger.
func (v *Vehicle) IsInService() bool {
	return v.available
}

func validateVehicleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyVehicleName
	}
	if len(name) > MaxVehicleNameLength {
		return ErrVehicleNameTooLong
	}
	return nil
}

func (v *Vehicle) ID() uuid.UUID            { return v.id }
func (v *Vehicle) Name() string             { return v.name }
func (v *Vehicle) Price() string            { return v.price }
func (v *Vehicle) PricePerDayCents() int64  { return v.pricePerDayCents }
func (v *Vehicle) PricePerHourCents() int64 { return v.pricePerHourCents }
func (v *Vehicle) Category() Category       { return v.category }
func (v *Vehicle) Specs() []string          { return v.specs }
func (v *Vehicle) Image() string            { return v.image }
func (v *Vehicle) Available() bool          { return v.available }
func (v *Vehicle) Featured() bool           { return v.featured }
func (v *Vehicle) CreatedAt() time.Time     { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time     { return v.updatedAt }
