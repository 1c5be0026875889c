package shared

import (
	"context"
	"time"

	"exechire/internal/domain/booking"
	"exechire/internal/domain/notification"
	"exechire/internal/domain/payment"
	"exechire/internal/domain/user"
	"exechire/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Payments() PaymentRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Vehicles() VehicleRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	VehicleByID(ctx context.Context, id uuid.UUID) (*VehicleSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	PaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*PaymentSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	// HasBookingConflict applies the half-open overlap rule against bookings in
	// a blocking status (PENDING, CONFIRMED).
	HasBookingConflict(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, bookingID uuid.UUID, status booking.Status) error
	// LockVehicle serializes check-then-insert per vehicle via a
	// transaction-scoped advisory lock. Released automatically at commit/rollback.
	LockVehicle(ctx context.Context, tx db.DBTX, vehicleID uuid.UUID) error
}

type PaymentRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *payment.Payment) (uuid.UUID, error)
	Complete(ctx context.Context, tx db.DBTX, paymentID uuid.UUID, providerRef string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, tx db.DBTX, n *notification.Notification) (uuid.UUID, error)
	MarkRead(ctx context.Context, tx db.DBTX, notificationID, userID uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
}

type VehicleRepository interface {
	SetAvailability(ctx context.Context, tx db.DBTX, vehicleID uuid.UUID, available bool) error
}
