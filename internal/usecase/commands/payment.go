package commands

import (
	"context"
	"fmt"
	"log/slog"

	"exechire/internal/domain/booking"
	"exechire/internal/domain/notification"
	"exechire/internal/domain/payment"
	"exechire/internal/infra"
	"exechire/internal/pkg/errs"
	"exechire/internal/usecase/queries"
	"exechire/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound         = errs.New("payment not found")
	ErrPaymentAlreadyCompleted = errs.New("payment already completed")
)

type PaymentCommands interface {
	// ConfirmPayment marks the booking's payment COMPLETED and the booking
	// CONFIRMED in one transaction. The provider reference is opaque.
	ConfirmPayment(ctx context.Context, bookingID uuid.UUID, providerRef string, actor queries.Actor) error
}

type paymentCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
}

func NewPaymentCommands(uow shared.UnitOfWork, bookingQueries queries.BookingQueries) PaymentCommands {
	return &paymentCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
	}
}

func (p *paymentCommandsImpl) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, providerRef string, actor queries.Actor) error {
	var userID uuid.UUID

	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bookingSnap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !actor.IsAdmin() && bookingSnap.UserID != actor.ID {
			return ErrBookingAccessDenied
		}

		bookingEntity, err := reconstructFromSnapshot(bookingSnap)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := bookingEntity.Confirm(); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}

		paymentSnap, err := tx.Reads().PaymentByBookingID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPaymentNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if paymentSnap.Status == payment.StatusCompleted.String() {
			return ErrPaymentAlreadyCompleted
		}

		if err := tx.Payments().Complete(ctx, tx.DB(), paymentSnap.ID, providerRef); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrPaymentAlreadyCompleted
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, booking.StatusConfirmed); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		userID = bookingSnap.UserID
		return nil
	})
	if err != nil {
		return err
	}

	p.notifyPaymentConfirmed(ctx, bookingID, userID)

	return nil
}

// notifyPaymentConfirmed runs after commit and is best-effort: failures are
// logged, never surfaced to the caller.
func (p *paymentCommandsImpl) notifyPaymentConfirmed(ctx context.Context, bookingID, userID uuid.UUID) {
	view, err := p.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		slog.Warn("failed to load booking for confirmation notice", "booking_id", bookingID, "error", err.Error())
		return
	}

	entity, err := notification.NewNotification(
		userID,
		notification.KindBookingConfirmed,
		"Booking confirmed",
		fmt.Sprintf("Payment received. Your booking for %s is confirmed.", view.VehicleName),
	)
	if err != nil {
		slog.Warn("failed to build confirmation notification", "booking_id", bookingID, "error", err.Error())
		return
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Notifications().Create(ctx, tx.DB(), entity)
		return err
	})
	if err != nil {
		slog.Warn("failed to store confirmation notification", "booking_id", bookingID, "error", err.Error())
	}
}
