package commands

import (
	"context"
	"fmt"
	"log/slog"

	"exechire/internal/domain/booking"
	"exechire/internal/domain/notification"
	"exechire/internal/domain/payment"
	"exechire/internal/domain/vehicle"
	reqdto "exechire/internal/handler/dto/request"
	"exechire/internal/infra"
	"exechire/internal/infra/mail"
	"exechire/internal/pkg/errs"
	"exechire/internal/usecase/queries"
	"exechire/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrVehicleNotFound         = errs.New("vehicle not found")
	ErrVehicleUnavailable      = errs.New("vehicle unavailable")
	ErrBookingConflict         = errs.New("booking dates conflict with an existing booking")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingAccessDenied     = errs.New("booking access denied")
	ErrInvalidTransition       = errs.New("invalid booking status transition")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// VehicleCacheInvalidator drops cached vehicle state after availability flips.
type VehicleCacheInvalidator interface {
	Invalidate(ctx context.Context, vehicleID uuid.UUID)
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actor queries.Actor) error
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingFactory *booking.Factory
	bookingQueries queries.BookingQueries
	mailer         mail.Mailer
	cache          VehicleCacheInvalidator
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingFactory *booking.Factory,
	bookingQueries queries.BookingQueries,
	mailer mail.Mailer,
	cache VehicleCacheInvalidator,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingFactory: bookingFactory,
		bookingQueries: bookingQueries,
		mailer:         mailer,
		cache:          cache,
	}
}

func (b *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
) (*queries.BookingView, error) {
	dateRange, err := req.ToDateRange()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// Fail fast outside the transaction; the checks are repeated inside it.
	vehicleEntity, err := b.loadVehicle(ctx, b.uow.CommandReads(), req.VehicleID)
	if err != nil {
		return nil, err
	}

	bookingEntity, err := b.bookingFactory.CreateBooking(vehicleEntity, userID, dateRange)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Serialize per vehicle so the conflict check below sees every
		// committed booking for this vehicle.
		if err := tx.Bookings().LockVehicle(ctx, tx.DB(), req.VehicleID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		vehicleSnap, err := tx.Reads().VehicleByID(ctx, req.VehicleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrVehicleNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !vehicleSnap.Available {
			return ErrVehicleUnavailable
		}

		conflict, err := tx.Reads().HasBookingConflict(ctx, req.VehicleID, dateRange.Start(), dateRange.End())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if conflict {
			return ErrBookingConflict
		}

		if _, err := tx.Bookings().Create(ctx, tx.DB(), bookingEntity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		pendingPayment, err := payment.NewPendingPayment(bookingEntity.ID(), userID, bookingEntity.TotalAmount().Cents())
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if _, err := tx.Payments().Create(ctx, tx.DB(), pendingPayment); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write for the response view
	view, err := b.bookingQueries.GetByIDSystem(ctx, bookingEntity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	b.notifyBookingCreated(ctx, view)

	return view, nil
}

func (b *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, actor queries.Actor) error {
	var vehicleID uuid.UUID
	var cancelled bool

	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !actor.IsAdmin() && snap.UserID != actor.ID {
			return ErrBookingAccessDenied
		}

		bookingEntity, err := reconstructFromSnapshot(snap)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		// Cancelling an already-cancelled booking is a no-op
		if bookingEntity.Status() == booking.StatusCancelled {
			return nil
		}

		if err := bookingEntity.Cancel(); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, booking.StatusCancelled); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Vehicles().SetAvailability(ctx, tx.DB(), snap.VehicleID, true); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		vehicleID = snap.VehicleID
		cancelled = true
		return nil
	})
	if err != nil {
		return err
	}

	if cancelled {
		b.cache.Invalidate(ctx, vehicleID)
		b.notifyBookingCancelled(ctx, bookingID)
	}

	return nil
}

func (b *bookingCommandsImpl) loadVehicle(ctx context.Context, reads shared.CommandReads, vehicleID uuid.UUID) (*vehicle.Vehicle, error) {
	snap, err := reads.VehicleByID(ctx, vehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !snap.Available {
		return nil, ErrVehicleUnavailable
	}

	category, err := vehicle.NewCategory(snap.Category)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return vehicle.NewVehicle(
		snap.ID, snap.Name, "",
		snap.PricePerDayCents, 0,
		category, nil, "",
		snap.Available, false,
	)
}

func reconstructFromSnapshot(snap *shared.BookingSnapshot) (*booking.Booking, error) {
	dateRange, err := booking.NewDateRange(snap.StartDate, snap.EndDate)
	if err != nil {
		return nil, err
	}
	total, err := booking.NewMoney(snap.TotalAmountCents)
	if err != nil {
		return nil, err
	}
	status, err := booking.NewStatus(snap.Status)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		snap.ID, snap.UserID, snap.VehicleID,
		dateRange, total, status,
		snap.CreatedAt, snap.UpdatedAt,
	), nil
}

// notifyBookingCreated runs after commit: confirmation email plus a
// notification row. Both are best-effort and never fail the booking.
func (b *bookingCommandsImpl) notifyBookingCreated(ctx context.Context, view *queries.BookingView) {
	userSnap, err := b.uow.CommandReads().UserByID(ctx, view.UserID)
	if err != nil {
		slog.Warn("failed to load user for booking confirmation", "booking_id", view.ID, "error", err.Error())
		return
	}

	confirmation := mail.BookingConfirmation{
		CustomerName:  userSnap.Name,
		CustomerEmail: userSnap.Email,
		VehicleName:   view.VehicleName,
		StartDate:     view.StartDate,
		EndDate:       view.EndDate,
		TotalAmount:   formatRands(view.TotalAmountCents),
		BookingID:     view.ID.String(),
	}
	if err := b.mailer.SendBookingConfirmation(ctx, confirmation); err != nil {
		slog.Warn("failed to send booking confirmation email", "booking_id", view.ID, "error", err.Error())
	}

	message := fmt.Sprintf("Your booking for %s is pending payment. Total: %s.",
		view.VehicleName, formatRands(view.TotalAmountCents))
	b.createNotification(ctx, view.UserID, notification.KindBookingCreated, "Booking received", message)
}

func (b *bookingCommandsImpl) notifyBookingCancelled(ctx context.Context, bookingID uuid.UUID) {
	view, err := b.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		slog.Warn("failed to load booking for cancellation notice", "booking_id", bookingID, "error", err.Error())
		return
	}

	message := fmt.Sprintf("Your booking for %s has been cancelled.", view.VehicleName)
	b.createNotification(ctx, view.UserID, notification.KindBookingCancelled, "Booking cancelled", message)
}

func (b *bookingCommandsImpl) createNotification(ctx context.Context, userID uuid.UUID, kind notification.Kind, title, message string) {
	entity, err := notification.NewNotification(userID, kind, title, message)
	if err != nil {
		slog.Warn("failed to build notification", "user_id", userID, "error", err.Error())
		return
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Notifications().Create(ctx, tx.DB(), entity)
		return err
	})
	if err != nil {
		slog.Warn("failed to store notification", "user_id", userID, "error", err.Error())
	}
}

func formatRands(cents int64) string {
	return fmt.Sprintf("R%.2f", float64(cents)/100.0)
}
