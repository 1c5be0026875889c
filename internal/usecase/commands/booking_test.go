//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"exechire/internal/domain/booking"
	"exechire/internal/domain/notification"
	"exechire/internal/domain/payment"
	reqdto "exechire/internal/handler/dto/request"
	"exechire/internal/infra"
	"exechire/internal/infra/db"
	"exechire/internal/infra/mail"
	"exechire/internal/pkg/clock"
	"exechire/internal/pkg/errs"
	"exechire/internal/usecase/commands"
	"exechire/internal/usecase/queries"
	"exechire/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// fakeStore backs an in-memory UnitOfWork that mirrors the repository
// semantics: half-open overlap against blocking statuses, NOT_FOUND kinds for
// missing rows.
type fakeStore struct {
	vehicles       map[uuid.UUID]*shared.VehicleSnapshot
	bookings       map[uuid.UUID]*shared.BookingSnapshot
	payments       map[uuid.UUID]*shared.PaymentSnapshot // keyed by booking ID
	users          map[uuid.UUID]*shared.UserSnapshot
	notifications  []*notification.Notification
	lockedVehicles []uuid.UUID
	now            time.Time
}

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, errs.New("no rows in result set"), infra.KindNotFound)
}

type fakeUoW struct{ store *fakeStore }

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct{ store *fakeStore }

func (t *fakeTx) Bookings() shared.BookingRepository { return &fakeBookingRepo{store: t.store} }

func (t *fakeTx) Payments() shared.PaymentRepository { return &fakePaymentRepo{store: t.store} }

func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{store: t.store}
}

func (t *fakeTx) Users() shared.UserRepository { return nil }

func (t *fakeTx) Vehicles() shared.VehicleRepository { return &fakeVehicleRepo{store: t.store} }

func (t *fakeTx) Reads() shared.CommandReads { return &fakeReads{store: t.store} }

func (t *fakeTx) DB() db.DBTX { return nil }

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	r.store.bookings[b.ID()] = &shared.BookingSnapshot{
		ID:               b.ID(),
		UserID:           b.UserID(),
		VehicleID:        b.VehicleID(),
		Status:           b.Status().String(),
		StartDate:        b.DateRange().Start(),
		EndDate:          b.DateRange().End(),
		TotalAmountCents: b.TotalAmount().Cents(),
		CreatedAt:        r.store.now,
		UpdatedAt:        r.store.now,
	}
	return b.ID(), nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, _ db.DBTX, bookingID uuid.UUID, status booking.Status) error {
	snap, ok := r.store.bookings[bookingID]
	if !ok {
		return notFoundErr("booking not found")
	}
	snap.Status = status.String()
	return nil
}

func (r *fakeBookingRepo) LockVehicle(_ context.Context, _ db.DBTX, vehicleID uuid.UUID) error {
	r.store.lockedVehicles = append(r.store.lockedVehicles, vehicleID)
	return nil
}

type fakePaymentRepo struct{ store *fakeStore }

func (r *fakePaymentRepo) Create(_ context.Context, _ db.DBTX, p *payment.Payment) (uuid.UUID, error) {
	r.store.payments[p.BookingID()] = &shared.PaymentSnapshot{
		ID:          p.ID(),
		BookingID:   p.BookingID(),
		UserID:      p.UserID(),
		Status:      p.Status().String(),
		AmountCents: p.AmountCents(),
	}
	return p.ID(), nil
}

func (r *fakePaymentRepo) Complete(_ context.Context, _ db.DBTX, paymentID uuid.UUID, providerRef string) error {
	for _, snap := range r.store.payments {
		if snap.ID == paymentID {
			snap.Status = payment.StatusCompleted.String()
			snap.ProviderRef = &providerRef
			return nil
		}
	}
	return notFoundErr("payment not found")
}

type fakeNotificationRepo struct{ store *fakeStore }

func (r *fakeNotificationRepo) Create(_ context.Context, _ db.DBTX, n *notification.Notification) (uuid.UUID, error) {
	r.store.notifications = append(r.store.notifications, n)
	return n.ID(), nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, _ db.DBTX, _, _ uuid.UUID) error {
	return nil
}

type fakeVehicleRepo struct{ store *fakeStore }

func (r *fakeVehicleRepo) SetAvailability(_ context.Context, _ db.DBTX, vehicleID uuid.UUID, available bool) error {
	snap, ok := r.store.vehicles[vehicleID]
	if !ok {
		return notFoundErr("vehicle not found")
	}
	snap.Available = available
	return nil
}

type fakeReads struct{ store *fakeStore }

func (r *fakeReads) VehicleByID(_ context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	snap, ok := r.store.vehicles[id]
	if !ok {
		return nil, notFoundErr("vehicle not found")
	}
	return snap, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	snap, ok := r.store.bookings[id]
	if !ok {
		return nil, notFoundErr("booking not found")
	}
	return snap, nil
}

func (r *fakeReads) PaymentByBookingID(_ context.Context, bookingID uuid.UUID) (*shared.PaymentSnapshot, error) {
	snap, ok := r.store.payments[bookingID]
	if !ok {
		return nil, notFoundErr("payment not found")
	}
	return snap, nil
}

func (r *fakeReads) UserByEmail(_ context.Context, email string) (*shared.UserSnapshot, error) {
	for _, snap := range r.store.users {
		if snap.Email == email {
			return snap, nil
		}
	}
	return nil, notFoundErr("user not found")
}

func (r *fakeReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	snap, ok := r.store.users[id]
	if !ok {
		return nil, notFoundErr("user not found")
	}
	return snap, nil
}

func (r *fakeReads) HasBookingConflict(_ context.Context, vehicleID uuid.UUID, start, end time.Time) (bool, error) {
	for _, b := range r.store.bookings {
		if b.VehicleID != vehicleID {
			continue
		}
		status := booking.Status(b.Status)
		if !status.IsBlocking() {
			continue
		}
		if b.StartDate.Before(end) && b.EndDate.After(start) {
			return true, nil
		}
	}
	return false, nil
}

type fakeBookingQueries struct{ store *fakeStore }

func (q *fakeBookingQueries) GetByIDSystem(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	snap, ok := q.store.bookings[id]
	if !ok {
		return nil, errs.Mark(errs.New("no rows in result set"), queries.ErrBookingNotFound)
	}
	view := &queries.BookingView{
		ID:               snap.ID,
		UserID:           snap.UserID,
		VehicleID:        snap.VehicleID,
		StartDate:        snap.StartDate,
		EndDate:          snap.EndDate,
		TotalAmountCents: snap.TotalAmountCents,
		Status:           snap.Status,
		CreatedAt:        snap.CreatedAt,
		UpdatedAt:        snap.UpdatedAt,
	}
	if v, ok := q.store.vehicles[snap.VehicleID]; ok {
		view.VehicleName = v.Name
		view.VehicleCategory = v.Category
	}
	return view, nil
}

func (q *fakeBookingQueries) GetByID(ctx context.Context, _ queries.Actor, id uuid.UUID) (*queries.BookingView, error) {
	return q.GetByIDSystem(ctx, id)
}

func (q *fakeBookingQueries) List(_ context.Context, _ queries.Actor, _ *uuid.UUID) ([]*queries.BookingView, error) {
	return nil, nil
}

func (q *fakeBookingQueries) Availability(_ context.Context, _ uuid.UUID, _, _ time.Time) (*queries.AvailabilityView, error) {
	return nil, nil
}

type recordingMailer struct{ sent []mail.BookingConfirmation }

func (m *recordingMailer) SendBookingConfirmation(_ context.Context, bc mail.BookingConfirmation) error {
	m.sent = append(m.sent, bc)
	return nil
}

type recordingInvalidator struct{ invalidated []uuid.UUID }

func (r *recordingInvalidator) Invalidate(_ context.Context, vehicleID uuid.UUID) {
	r.invalidated = append(r.invalidated, vehicleID)
}

type BookingCommandsTestSuite struct {
	suite.Suite
	store     *fakeStore
	mailer    *recordingMailer
	cache     *recordingInvalidator
	clock     *clock.MockClock
	commands  commands.BookingCommands
	vehicleID uuid.UUID
	userID    uuid.UUID
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.clock = clock.NewMockClock(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	s.vehicleID = uuid.New()
	s.userID = uuid.New()
	s.store = &fakeStore{
		vehicles: map[uuid.UUID]*shared.VehicleSnapshot{
			s.vehicleID: {
				ID:               s.vehicleID,
				Name:             "Bentley Continental GT",
				PricePerDayCents: 250000,
				Category:         "LUXURY",
				Available:        true,
			},
		},
		bookings: map[uuid.UUID]*shared.BookingSnapshot{},
		payments: map[uuid.UUID]*shared.PaymentSnapshot{},
		users: map[uuid.UUID]*shared.UserSnapshot{
			s.userID: {
				ID:       s.userID,
				Email:    "guest@example.com",
				Name:     "Guest",
				Role:     "USER",
				IsActive: true,
			},
		},
		now: s.clock.Now(),
	}
	s.mailer = &recordingMailer{}
	s.cache = &recordingInvalidator{}

	factory := booking.NewFactory(s.clock, booking.NewDailyRateCalculator())
	s.commands = commands.NewBookingCommands(
		&fakeUoW{store: s.store},
		factory,
		&fakeBookingQueries{store: s.store},
		s.mailer,
		s.cache,
	)
}

// SetupSubTest gives every subtest a fresh store; commands are stateful here,
// unlike the mocked handler suites.
func (s *BookingCommandsTestSuite) SetupSubTest() {
	s.SetupTest()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) owner() queries.Actor {
	return queries.Actor{ID: s.userID, Role: "USER"}
}

func (s *BookingCommandsTestSuite) day(d int) time.Time {
	return time.Date(2026, 9, d, 9, 0, 0, 0, time.UTC)
}

func (s *BookingCommandsTestSuite) createReq(startDay, endDay int) reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		VehicleID: s.vehicleID,
		StartDate: s.day(startDay),
		EndDate:   s.day(endDay),
	}
}

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	s.Run("作成成功でPENDING予約と同額のPENDING支払いが揃う", func() {
		view, err := s.commands.CreateBooking(context.Background(), s.createReq(10, 12), s.userID)
		s.Require().NoError(err)

		s.Equal(booking.StatusPending.String(), view.Status)
		s.Equal(int64(500000), view.TotalAmountCents)

		paymentSnap, ok := s.store.payments[view.ID]
		s.Require().True(ok)
		s.Equal(payment.StatusPending.String(), paymentSnap.Status)
		s.Equal(view.TotalAmountCents, paymentSnap.AmountCents)

		s.Contains(s.store.lockedVehicles, s.vehicleID)
		s.Len(s.mailer.sent, 1)
		s.Len(s.store.notifications, 1)
	})

	s.Run("端数の期間は日単位に切り上げて課金する", func() {
		req := s.createReq(10, 12)
		req.EndDate = req.EndDate.Add(12 * time.Hour) // 2.5 days

		view, err := s.commands.CreateBooking(context.Background(), req, s.userID)
		s.Require().NoError(err)
		s.Equal(int64(750000), view.TotalAmountCents)
	})

	s.Run("既存予約と接する予約は成立する", func() {
		_, err := s.commands.CreateBooking(context.Background(), s.createReq(10, 12), s.userID)
		s.Require().NoError(err)

		// [10,12) and [12,14) share only the boundary instant
		_, err = s.commands.CreateBooking(context.Background(), s.createReq(12, 14), s.userID)
		s.Require().NoError(err)

		s.True(s.store.vehicles[s.vehicleID].Available)
		s.Len(s.store.bookings, 2)
		s.Len(s.store.payments, 2)
	})

	s.Run("重複する予約は拒否され何も書き込まれない", func() {
		_, err := s.commands.CreateBooking(context.Background(), s.createReq(10, 12), s.userID)
		s.Require().NoError(err)

		_, err = s.commands.CreateBooking(context.Background(), s.createReq(11, 13), s.userID)
		s.Require().ErrorIs(err, commands.ErrBookingConflict)

		s.Len(s.store.bookings, 1)
		s.Len(s.store.payments, 1)
		s.Len(s.mailer.sent, 1)
	})

	s.Run("存在しない車両はNotFound", func() {
		req := s.createReq(10, 12)
		req.VehicleID = uuid.New()

		_, err := s.commands.CreateBooking(context.Background(), req, s.userID)
		s.ErrorIs(err, commands.ErrVehicleNotFound)
	})

	s.Run("整備中の車両は予約できない", func() {
		s.store.vehicles[s.vehicleID].Available = false

		_, err := s.commands.CreateBooking(context.Background(), s.createReq(10, 12), s.userID)
		s.ErrorIs(err, commands.ErrVehicleUnavailable)
		s.Empty(s.store.bookings)
	})

	s.Run("過去の開始日はバリデーションエラー", func() {
		req := s.createReq(10, 12)
		req.StartDate = time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

		_, err := s.commands.CreateBooking(context.Background(), req, s.userID)
		s.ErrorIs(err, commands.ErrDomainValidation)
		s.Empty(s.store.bookings)
	})
}

func (s *BookingCommandsTestSuite) TestCancelBooking() {
	s.Run("キャンセルで予約はCANCELLEDになり車両フラグが復元される", func() {
		view, err := s.commands.CreateBooking(context.Background(), s.createReq(10, 12), s.userID)
		s.Require().NoError(err)

		s.store.vehicles[s.vehicleID].Available = false

		s.Require().NoError(s.commands.CancelBooking(context.Background(), view.ID, s.owner()))
		s.Equal(booking.StatusCancelled.String(), s.store.bookings[view.ID].Status)
		s.True(s.store.vehicles[s.vehicleID].Available)
		s.Contains(s.cache.invalidated, s.vehicleID)
	})

	s.Run("キャンセルは冪等", func() {
		view, err := s.commands.CreateBooking(context.Background(), s.createReq(10, 12), s.userID)
		s.Require().NoError(err)

		s.Require().NoError(s.commands.CancelBooking(context.Background(), view.ID, s.owner()))
		s.Require().NoError(s.commands.CancelBooking(context.Background(), view.ID, s.owner()))
		s.Equal(booking.StatusCancelled.String(), s.store.bookings[view.ID].Status)
	})

	s.Run("他人の予約はキャンセルできない", func() {
		view, err := s.commands.CreateBooking(context.Background(), s.createReq(10, 12), s.userID)
		s.Require().NoError(err)

		stranger := queries.Actor{ID: uuid.New(), Role: "USER"}
		err = s.commands.CancelBooking(context.Background(), view.ID, stranger)
		s.ErrorIs(err, commands.ErrBookingAccessDenied)
		s.Equal(booking.StatusPending.String(), s.store.bookings[view.ID].Status)
	})

	s.Run("管理者は他人の予約をキャンセルできる", func() {
		view, err := s.commands.CreateBooking(context.Background(), s.createReq(10, 12), s.userID)
		s.Require().NoError(err)

		admin := queries.Actor{ID: uuid.New(), Role: "ADMIN"}
		s.Require().NoError(s.commands.CancelBooking(context.Background(), view.ID, admin))
		s.Equal(booking.StatusCancelled.String(), s.store.bookings[view.ID].Status)
	})

	s.Run("COMPLETEDの予約はキャンセルできない", func() {
		view, err := s.commands.CreateBooking(context.Background(), s.createReq(10, 12), s.userID)
		s.Require().NoError(err)

		s.store.bookings[view.ID].Status = booking.StatusCompleted.String()

		err = s.commands.CancelBooking(context.Background(), view.ID, s.owner())
		s.ErrorIs(err, commands.ErrInvalidTransition)
	})

	s.Run("存在しない予約はNotFound", func() {
		err := s.commands.CancelBooking(context.Background(), uuid.New(), s.owner())
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})
}
