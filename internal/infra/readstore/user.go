package readstore

import (
	"context"

	"exechire/internal/infra"
	"exechire/internal/infra/db"
	"exechire/internal/pkg/pgconv"
	"exechire/internal/usecase/queries"
	"exechire/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	const query = `
		SELECT id, email, name, role, is_active
		FROM users
		WHERE id = $1
	`

	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Email, &view.Name, &view.Role, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &view, nil
}

// FindSnapshotByEmail returns the credential-bearing snapshot for login.
// Never exposed through a query service.
func (r *UserReadStore) FindSnapshotByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	const query = `
		SELECT id, email, name, password_hash, role, is_active
		FROM users
		WHERE email = $1
	`

	var snap shared.UserSnapshot
	err := r.db.QueryRow(ctx, query, email).Scan(
		&snap.ID, &snap.Email, &snap.Name, &snap.PasswordHash, &snap.Role, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	return &snap, nil
}

func (r *UserReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	const query = `
		SELECT id, email, name, password_hash, role, is_active
		FROM users
		WHERE id = $1
	`

	var snap shared.UserSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.Email, &snap.Name, &snap.PasswordHash, &snap.Role, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &snap, nil
}
