package readstore

import (
	"context"

	"exechire/internal/infra"
	"exechire/internal/infra/db"
	"exechire/internal/pkg/pgconv"
	"exechire/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx}
}

func (r *PaymentReadStore) FindSnapshotByBookingID(ctx context.Context, bookingID uuid.UUID) (*shared.PaymentSnapshot, error) {
	const query = `
		SELECT id, booking_id, user_id, status, amount_cents, provider_ref
		FROM payments
		WHERE booking_id = $1
	`

	var snap shared.PaymentSnapshot
	var providerRef pgtype.Text
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&snap.ID, &snap.BookingID, &snap.UserID,
		&snap.Status, &snap.AmountCents, &providerRef,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by booking ID", err)
	}
	snap.ProviderRef = pgconv.StringPtrFromPgtype(providerRef)

	return &snap, nil
}
