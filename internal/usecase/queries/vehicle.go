package queries

import (
	"context"

	"exechire/internal/infra"
	"exechire/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrVehicleNotFound = errs.New("vehicle not found")

type VehicleFilter struct {
	Category  *string
	Available *bool
	Featured  *bool
}

type VehicleQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	List(ctx context.Context, filter VehicleFilter) ([]*VehicleView, error)
}

type VehicleViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	FindAll(ctx context.Context, filter VehicleFilter) ([]*VehicleView, error)
}

type vehicleQueriesImpl struct {
	repo VehicleViewRepo
}

func NewVehicleQueries(repo VehicleViewRepo) VehicleQueries {
	return &vehicleQueriesImpl{repo: repo}
}

func (q *vehicleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrVehicleNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *vehicleQueriesImpl) List(ctx context.Context, filter VehicleFilter) ([]*VehicleView, error) {
	return q.repo.FindAll(ctx, filter)
}
