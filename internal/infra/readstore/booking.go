package readstore

import (
	"context"
	"time"

	"exechire/internal/infra"
	"exechire/internal/infra/db"
	"exechire/internal/pkg/pgconv"
	"exechire/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// bookingViewColumns joins the vehicle and payment so each view row is
// self-contained. A booking has at most one payment.
const bookingViewColumns = `
	b.id, b.user_id, b.vehicle_id,
	v.name AS vehicle_name, v.category AS vehicle_category,
	b.start_date, b.end_date, b.total_amount_cents, b.status,
	p.status AS payment_status, p.amount_cents AS payment_amount_cents,
	b.created_at, b.updated_at
`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		LEFT JOIN payments p ON p.booking_id = b.id
		WHERE b.id = $1
	`

	row := r.db.QueryRow(ctx, query, id)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return view, nil
}

func (r *BookingReadStore) FindAll(ctx context.Context) ([]*queries.BookingView, error) {
	const query = `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		LEFT JOIN payments p ON p.booking_id = b.id
		ORDER BY b.created_at DESC, b.id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	return collectBookingViews(rows)
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	const query = `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		LEFT JOIN payments p ON p.booking_id = b.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	return collectBookingViews(rows)
}

// FindConflicts applies the half-open [start, end) overlap rule: an existing
// booking conflicts iff it starts before the requested end AND ends after the
// requested start. Touching ranges (end == next start) do not conflict.
// Only PENDING and CONFIRMED bookings block.
func (r *BookingReadStore) FindConflicts(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) ([]queries.ConflictingBooking, error) {
	const query = `
		SELECT id, start_date, end_date, status
		FROM bookings
		WHERE vehicle_id = $1
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND start_date < $3
		  AND end_date > $2
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, vehicleID, start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find conflicting bookings", err)
	}
	defer rows.Close()

	conflicts := []queries.ConflictingBooking{}
	for rows.Next() {
		var c queries.ConflictingBooking
		var startDate, endDate pgtype.Timestamptz
		if err := rows.Scan(&c.ID, &startDate, &endDate, &c.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan conflicting booking", err)
		}
		c.StartDate = pgconv.TimeFromPgtype(startDate)
		c.EndDate = pgconv.TimeFromPgtype(endDate)
		conflicts = append(conflicts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read conflicting bookings", err)
	}

	return conflicts, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	var startDate, endDate, createdAt, updatedAt pgtype.Timestamptz
	var paymentStatus pgtype.Text
	var paymentAmount pgtype.Int8

	err := row.Scan(
		&view.ID, &view.UserID, &view.VehicleID,
		&view.VehicleName, &view.VehicleCategory,
		&startDate, &endDate, &view.TotalAmountCents, &view.Status,
		&paymentStatus, &paymentAmount,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.StartDate = pgconv.TimeFromPgtype(startDate)
	view.EndDate = pgconv.TimeFromPgtype(endDate)
	view.PaymentStatus = pgconv.StringPtrFromPgtype(paymentStatus)
	view.PaymentAmountCents = pgconv.Int64PtrFromPgtype(paymentAmount)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &view, nil
}

func collectBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	views := []*queries.BookingView{}
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking views", err)
	}

	return views, nil
}
