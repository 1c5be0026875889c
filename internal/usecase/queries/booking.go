package queries

import (
	"context"
	"time"

	"exechire/internal/infra"
	"exechire/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrForbidden       = errs.New("access denied")
	ErrBookingNotFound = errs.New("booking not found")
)

type BookingQueries interface {
	GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*BookingView, error)
	// List scopes results to the actor unless the actor is an admin. A
	// non-admin asking for another user's bookings is rejected outright rather
	// than silently narrowed.
	List(ctx context.Context, actor Actor, filterUserID *uuid.UUID) ([]*BookingView, error)
	Availability(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (*AvailabilityView, error)
	// GetByIDSystem bypasses authorization for internal read-after-write use.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindAll(ctx context.Context) ([]*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	FindConflicts(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) ([]ConflictingBooking, error)
}

type VehicleFlagRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
}

type bookingQueriesImpl struct {
	repo        BookingViewRepo
	vehicleRepo VehicleFlagRepo
}

func NewBookingQueries(repo BookingViewRepo, vehicleRepo VehicleFlagRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo, vehicleRepo: vehicleRepo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, err
	}
	if !actor.IsAdmin() && view.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) List(ctx context.Context, actor Actor, filterUserID *uuid.UUID) ([]*BookingView, error) {
	if actor.IsAdmin() {
		if filterUserID != nil {
			return q.repo.FindByUserID(ctx, *filterUserID)
		}
		return q.repo.FindAll(ctx)
	}

	if filterUserID != nil && *filterUserID != actor.ID {
		return nil, ErrForbidden
	}
	return q.repo.FindByUserID(ctx, actor.ID)
}

// Availability combines the coarse vehicle flag with the date-conflict check.
// Read-only and idempotent; the booking command re-checks inside its
// transaction before writing.
func (q *bookingQueriesImpl) Availability(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (*AvailabilityView, error) {
	vehicle, err := q.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrVehicleNotFound)
		}
		return nil, err
	}

	conflicts, err := q.repo.FindConflicts(ctx, vehicleID, start, end)
	if err != nil {
		return nil, err
	}

	return &AvailabilityView{
		VehicleID: vehicleID,
		Available: vehicle.Available && len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}
