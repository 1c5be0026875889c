//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"exechire/internal/infra"
	"exechire/internal/pkg/errs"
	"exechire/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingViewRepo struct {
	byID      map[uuid.UUID]*queries.BookingView
	all       []*queries.BookingView
	byUser    map[uuid.UUID][]*queries.BookingView
	conflicts []queries.ConflictingBooking
}

func (s *stubBookingViewRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, ok := s.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", errs.New("no rows"), infra.KindNotFound)
	}
	return view, nil
}

func (s *stubBookingViewRepo) FindAll(_ context.Context) ([]*queries.BookingView, error) {
	return s.all, nil
}

func (s *stubBookingViewRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	return s.byUser[userID], nil
}

func (s *stubBookingViewRepo) FindConflicts(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]queries.ConflictingBooking, error) {
	return s.conflicts, nil
}

type stubVehicleFlagRepo struct {
	view *queries.VehicleView
}

func (s *stubVehicleFlagRepo) FindByID(_ context.Context, _ uuid.UUID) (*queries.VehicleView, error) {
	if s.view == nil {
		return nil, infra.WrapRepoErr("vehicle not found", errs.New("no rows"), infra.KindNotFound)
	}
	return s.view, nil
}

func TestBookingQueries_GetByID(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()
	view := &queries.BookingView{ID: uuid.New(), UserID: ownerID, Status: "PENDING"}
	repo := &stubBookingViewRepo{byID: map[uuid.UUID]*queries.BookingView{view.ID: view}}
	q := queries.NewBookingQueries(repo, &stubVehicleFlagRepo{})

	t.Run("オーナー本人は取得できる", func(t *testing.T) {
		got, err := q.GetByID(context.Background(), queries.Actor{ID: ownerID, Role: "USER"}, view.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(view, got); diff != "" {
			t.Errorf("booking view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("管理者は他人の予約も取得できる", func(t *testing.T) {
		got, err := q.GetByID(context.Background(), queries.Actor{ID: strangerID, Role: "ADMIN"}, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("他人の予約は403相当のエラー", func(t *testing.T) {
		_, err := q.GetByID(context.Background(), queries.Actor{ID: strangerID, Role: "USER"}, view.ID)
		assert.ErrorIs(t, err, queries.ErrForbidden)
	})

	t.Run("存在しない予約はNotFound", func(t *testing.T) {
		_, err := q.GetByID(context.Background(), queries.Actor{ID: ownerID, Role: "USER"}, uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestBookingQueries_List(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()
	own := []*queries.BookingView{{ID: uuid.New(), UserID: ownerID}}
	others := []*queries.BookingView{{ID: uuid.New(), UserID: otherID}}
	repo := &stubBookingViewRepo{
		all: append(append([]*queries.BookingView{}, own...), others...),
		byUser: map[uuid.UUID][]*queries.BookingView{
			ownerID: own,
			otherID: others,
		},
	}
	q := queries.NewBookingQueries(repo, &stubVehicleFlagRepo{})

	t.Run("一般ユーザーは自分の予約のみ", func(t *testing.T) {
		got, err := q.List(context.Background(), queries.Actor{ID: ownerID, Role: "USER"}, nil)
		require.NoError(t, err)
		if diff := cmp.Diff(own, got); diff != "" {
			t.Errorf("booking list mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("一般ユーザーが他人のフィルタを指定すると拒否", func(t *testing.T) {
		_, err := q.List(context.Background(), queries.Actor{ID: ownerID, Role: "USER"}, &otherID)
		assert.ErrorIs(t, err, queries.ErrForbidden)
	})

	t.Run("自分自身のフィルタ指定は許可", func(t *testing.T) {
		got, err := q.List(context.Background(), queries.Actor{ID: ownerID, Role: "USER"}, &ownerID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("管理者はフィルタなしで全件", func(t *testing.T) {
		got, err := q.List(context.Background(), queries.Actor{ID: uuid.New(), Role: "ADMIN"}, nil)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("管理者は任意ユーザーでフィルタできる", func(t *testing.T) {
		got, err := q.List(context.Background(), queries.Actor{ID: uuid.New(), Role: "ADMIN"}, &otherID)
		require.NoError(t, err)
		if diff := cmp.Diff(others, got); diff != "" {
			t.Errorf("booking list mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestBookingQueries_Availability(t *testing.T) {
	vehicleID := uuid.New()
	start := time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	t.Run("車両フラグが有効かつ衝突なしなら利用可能", func(t *testing.T) {
		q := queries.NewBookingQueries(
			&stubBookingViewRepo{},
			&stubVehicleFlagRepo{view: &queries.VehicleView{ID: vehicleID, Available: true}},
		)

		got, err := q.Availability(context.Background(), vehicleID, start, end)
		require.NoError(t, err)
		assert.True(t, got.Available)
		assert.Empty(t, got.Conflicts)
	})

	t.Run("衝突があれば利用不可で衝突を返す", func(t *testing.T) {
		conflicts := []queries.ConflictingBooking{{ID: uuid.New(), StartDate: start, EndDate: end, Status: "CONFIRMED"}}
		q := queries.NewBookingQueries(
			&stubBookingViewRepo{conflicts: conflicts},
			&stubVehicleFlagRepo{view: &queries.VehicleView{ID: vehicleID, Available: true}},
		)

		got, err := q.Availability(context.Background(), vehicleID, start, end)
		require.NoError(t, err)
		assert.False(t, got.Available)
		if diff := cmp.Diff(conflicts, got.Conflicts); diff != "" {
			t.Errorf("conflicts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("車両フラグが無効なら衝突がなくても利用不可", func(t *testing.T) {
		q := queries.NewBookingQueries(
			&stubBookingViewRepo{},
			&stubVehicleFlagRepo{view: &queries.VehicleView{ID: vehicleID, Available: false}},
		)

		got, err := q.Availability(context.Background(), vehicleID, start, end)
		require.NoError(t, err)
		assert.False(t, got.Available)
	})

	t.Run("存在しない車両はNotFound", func(t *testing.T) {
		q := queries.NewBookingQueries(&stubBookingViewRepo{}, &stubVehicleFlagRepo{})

		_, err := q.Availability(context.Background(), vehicleID, start, end)
		assert.ErrorIs(t, err, queries.ErrVehicleNotFound)
	})
}
