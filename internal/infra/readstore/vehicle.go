package readstore

import (
	"context"

	"exechire/internal/infra"
	"exechire/internal/infra/db"
	"exechire/internal/pkg/pgconv"
	"exechire/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const vehicleViewColumns = `
	id, name, price, price_per_day_cents, price_per_hour_cents,
	category, specs, image, available, featured, created_at, updated_at
`

type VehicleReadStore struct {
	db db.DBTX
}

func NewVehicleReadStore(dbtx db.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: dbtx}
}

func (r *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	const query = `
		SELECT ` + vehicleViewColumns + `
		FROM vehicles
		WHERE id = $1
	`

	view, err := scanVehicleView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}

	return view, nil
}

func (r *VehicleReadStore) FindAll(ctx context.Context, filter queries.VehicleFilter) ([]*queries.VehicleView, error) {
	// NULL filter arguments disable the corresponding predicate.
	const query = `
		SELECT ` + vehicleViewColumns + `
		FROM vehicles
		WHERE ($1::text IS NULL OR category = $1)
		  AND ($2::bool IS NULL OR available = $2)
		  AND ($3::bool IS NULL OR featured = $3)
		ORDER BY featured DESC, name
	`

	rows, err := r.db.Query(ctx, query, filter.Category, filter.Available, filter.Featured)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles", err)
	}
	defer rows.Close()

	views := []*queries.VehicleView{}
	for rows.Next() {
		view, err := scanVehicleView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read vehicle views", err)
	}

	return views, nil
}

func scanVehicleView(row pgx.Row) (*queries.VehicleView, error) {
	var view queries.VehicleView
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&view.ID, &view.Name, &view.Price,
		&view.PricePerDayCents, &view.PricePerHourCents,
		&view.Category, &view.Specs, &view.Image,
		&view.Available, &view.Featured,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &view, nil
}
