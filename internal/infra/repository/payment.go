package repository

import (
	"context"

	"exechire/internal/domain/payment"
	"exechire/internal/infra"
	"exechire/internal/infra/db"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

func (r *PaymentRepository) Create(ctx context.Context, tx db.DBTX, p *payment.Payment) (uuid.UUID, error) {
	const query = `
		INSERT INTO payments (
			id, booking_id, user_id, amount_cents, status, provider_ref,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		p.ID(), p.BookingID(), p.UserID(),
		p.AmountCents(), p.Status().String(), p.ProviderRef(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create payment", err)
	}

	return id, nil
}

func (r *PaymentRepository) Complete(ctx context.Context, tx db.DBTX, paymentID uuid.UUID, providerRef string) error {
	const query = `
		UPDATE payments
		SET status = $2, provider_ref = $3, updated_at = NOW()
		WHERE id = $1 AND status <> $2
	`

	tag, err := tx.Exec(ctx, query, paymentID, payment.StatusCompleted.String(), providerRef)
	if err != nil {
		return infra.WrapRepoErr("failed to complete payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found or already completed", nil, infra.KindConflict)
	}

	return nil
}
