package repository

import (
	"context"

	"exechire/internal/infra"
	"exechire/internal/infra/db"

	"github.com/google/uuid"
)

type VehicleRepository struct {
	db db.DBTX
}

func NewVehicleRepository(dbtx db.DBTX) *VehicleRepository {
	return &VehicleRepository{db: dbtx}
}

func (r *VehicleRepository) SetAvailability(ctx context.Context, tx db.DBTX, vehicleID uuid.UUID, available bool) error {
	const query = `
		UPDATE vehicles
		SET available = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, vehicleID, available)
	if err != nil {
		return infra.WrapRepoErr("failed to update vehicle availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}

	return nil
}
