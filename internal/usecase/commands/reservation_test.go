//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain/reservation"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReservationQueries struct {
	getByID func(ctx context.Context, actorID, id uuid.UUID) (*queries.ReservationView, error)
}

func (s *stubReservationQueries) GetByID(ctx context.Context, actorID, id uuid.UUID) (*queries.ReservationView, error) {
	return s.getByID(ctx, actorID, id)
}

func (s *stubReservationQueries) GetByCode(context.Context, uuid.UUID, string) (*queries.ReservationView, error) {
	panic("not expected")
}

func (s *stubReservationQueries) ListByTenant(context.Context, uuid.UUID, *queries.Cursor, int) ([]*queries.ReservationListItem, *queries.Cursor, error) {
	panic("not expected")
}

func (s *stubReservationQueries) ListByProperty(context.Context, uuid.UUID, uuid.UUID, *queries.Cursor, int) ([]*queries.ReservationListItem, *queries.Cursor, error) {
	panic("not expected")
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testFactory() *reservation.Factory {
	return reservation.NewFactory(clock.NewMockClock(testNow), func() (string, error) {
		return "ST-TESTCODE", nil
	})
}

func propertySnapshot(ownerID uuid.UUID) *shared.PropertySnapshot {
	return &shared.PropertySnapshot{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Name:           "Seaside Cottage",
		Capacity:       4,
		DailyRateCents: 10000,
		Currency:       "USD",
		Active:         true,
	}
}

func createRequest(propertyID uuid.UUID) reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		PropertyID: propertyID,
		StartDate:  "2026-03-10",
		EndDate:    "2026-03-13",
		Guests:     2,
	}
}

func duplicateKeyErr() error {
	return infra.WrapRepoErr("insert reservation", &pgconn.PgError{Code: "23505"})
}

func TestReservationRequest(t *testing.T) {
	ownerID := uuid.New()
	tenantID := uuid.New()

	newUoW := func(available bool, create func(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)) *fakeUoW {
		uow := &fakeUoW{}
		snap := propertySnapshot(ownerID)
		uow.tx.reads.propertyByID = func(_ context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
			s := *snap
			s.ID = id
			return &s, nil
		}
		uow.tx.reads.isAvailable = func(context.Context, uuid.UUID, time.Time, time.Time) (bool, error) {
			return available, nil
		}
		uow.tx.reservations.create = create
		return uow
	}

	t.Run("creates reservation and enqueues event", func(t *testing.T) {
		reservationID := uuid.New()
		uow := newUoW(true, func(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
			assert.Equal(t, reservation.StatusRequested, res.Status())
			assert.Equal(t, int64(30000), res.Price().Cents())
			return reservationID, nil
		})
		view := builder.NewReservationBuilder().WithID(reservationID).WithTenantID(tenantID).BuildView()
		rq := &stubReservationQueries{getByID: func(_ context.Context, actorID, id uuid.UUID) (*queries.ReservationView, error) {
			assert.Equal(t, tenantID, actorID)
			assert.Equal(t, reservationID, id)
			return view, nil
		}}
		svc := commands.NewReservationCommands(uow, testFactory(), rq, clock.NewMockClock(testNow))

		got, err := svc.Request(context.Background(), createRequest(uuid.New()), tenantID)
		require.NoError(t, err)
		assert.Equal(t, view, got)

		require.Len(t, uow.tx.notifications.jobs, 1)
		assert.Equal(t, "reservation.requested", uow.tx.notifications.jobs[0].topic)
		assert.Equal(t, "email", uow.tx.notifications.jobs[0].kind)
	})

	t.Run("dates unavailable on pre-check", func(t *testing.T) {
		uow := newUoW(false, nil)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		_, err := svc.Request(context.Background(), createRequest(uuid.New()), tenantID)
		require.ErrorIs(t, err, errs.ErrDatesUnavailable)
	})

	t.Run("exclusion conflict maps to dates unavailable", func(t *testing.T) {
		uow := newUoW(true, func(context.Context, *reservation.Reservation) (uuid.UUID, error) {
			return uuid.Nil, infra.WrapRepoErr("insert reservation", &pgconn.PgError{Code: "23P01"})
		})
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		_, err := svc.Request(context.Background(), createRequest(uuid.New()), tenantID)
		require.ErrorIs(t, err, errs.ErrDatesUnavailable)
	})

	t.Run("code collision retries with a fresh code", func(t *testing.T) {
		reservationID := uuid.New()
		attempts := 0
		uow := newUoW(true, func(context.Context, *reservation.Reservation) (uuid.UUID, error) {
			attempts++
			if attempts == 1 {
				return uuid.Nil, duplicateKeyErr()
			}
			return reservationID, nil
		})
		rq := &stubReservationQueries{getByID: func(context.Context, uuid.UUID, uuid.UUID) (*queries.ReservationView, error) {
			return builder.NewReservationBuilder().WithID(reservationID).BuildView(), nil
		}}
		svc := commands.NewReservationCommands(uow, testFactory(), rq, clock.NewMockClock(testNow))

		_, err := svc.Request(context.Background(), createRequest(uuid.New()), tenantID)
		require.NoError(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("code collisions exhaust retries", func(t *testing.T) {
		attempts := 0
		uow := newUoW(true, func(context.Context, *reservation.Reservation) (uuid.UUID, error) {
			attempts++
			return uuid.Nil, duplicateKeyErr()
		})
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		_, err := svc.Request(context.Background(), createRequest(uuid.New()), tenantID)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
		assert.Equal(t, 3, attempts)
	})

	t.Run("unknown property", func(t *testing.T) {
		uow := &fakeUoW{}
		uow.tx.reads.propertyByID = func(context.Context, uuid.UUID) (*shared.PropertySnapshot, error) {
			return nil, infra.WrapRepoErr("find property", nil, infra.KindNotFound)
		}
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		_, err := svc.Request(context.Background(), createRequest(uuid.New()), tenantID)
		require.ErrorIs(t, err, errs.ErrPropertyNotFound)
	})

	t.Run("owner booking their own property", func(t *testing.T) {
		uow := newUoW(true, nil)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		_, err := svc.Request(context.Background(), createRequest(uuid.New()), ownerID)
		require.ErrorIs(t, err, errs.ErrOwnPropertyBooking)
	})

	t.Run("malformed dates", func(t *testing.T) {
		uow := newUoW(true, nil)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		req := createRequest(uuid.New())
		req.StartDate = "03/10/2026"
		_, err := svc.Request(context.Background(), req, tenantID)
		require.ErrorIs(t, err, errs.ErrInvalidStayPeriod)
	})
}

func transitionUoW(snap *shared.ReservationSnapshot, rows int64) *fakeUoW {
	uow := &fakeUoW{}
	uow.tx.reads.reservationByID = func(context.Context, uuid.UUID) (*shared.ReservationSnapshot, error) {
		s := *snap
		return &s, nil
	}
	uow.tx.reservations.updateStatus = func(context.Context, shared.StatusUpdate) (int64, error) {
		return rows, nil
	}
	return uow
}

func TestReservationApproveCommand(t *testing.T) {
	b := builder.NewReservationBuilder()
	snap := b.BuildSnapshot()

	t.Run("owner approves a request", func(t *testing.T) {
		uow := transitionUoW(snap, 1)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		require.NoError(t, svc.Approve(context.Background(), snap.ID, snap.OwnerID))

		require.Len(t, uow.tx.reservations.statusUpdates, 1)
		upd := uow.tx.reservations.statusUpdates[0]
		assert.Equal(t, reservation.StatusRequested, upd.From)
		assert.Equal(t, reservation.StatusAwaitingPayment, upd.To)
		assert.False(t, upd.FromAnyActive)
		assert.False(t, upd.SetConfirmedAt)

		require.Len(t, uow.tx.notifications.jobs, 1)
		assert.Equal(t, "reservation.approved", uow.tx.notifications.jobs[0].topic)
	})

	t.Run("tenant cannot approve", func(t *testing.T) {
		uow := transitionUoW(snap, 1)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		err := svc.Approve(context.Background(), snap.ID, snap.TenantID)
		require.ErrorIs(t, err, errs.ErrNotReservationParty)
	})

	t.Run("already approved", func(t *testing.T) {
		awaiting := builder.NewReservationBuilder().AsAwaitingPayment().BuildSnapshot()
		uow := transitionUoW(awaiting, 1)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		err := svc.Approve(context.Background(), awaiting.ID, awaiting.OwnerID)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("lost CAS reports the winning state", func(t *testing.T) {
		uow := transitionUoW(snap, 0)
		// the re-read after the miss sees the row already cancelled
		reads := 0
		uow.tx.reads.reservationByID = func(context.Context, uuid.UUID) (*shared.ReservationSnapshot, error) {
			reads++
			s := *snap
			if reads > 1 {
				s.Status = reservation.StatusCancelled.String()
			}
			return &s, nil
		}
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		err := svc.Approve(context.Background(), snap.ID, snap.OwnerID)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		var ite *reservation.InvalidTransitionError
		require.ErrorAs(t, err, &ite)
		assert.Equal(t, reservation.StatusCancelled, ite.Current)
	})
}

func TestReservationRejectCommand(t *testing.T) {
	snap := builder.NewReservationBuilder().BuildSnapshot()
	uow := transitionUoW(snap, 1)
	svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

	require.NoError(t, svc.Reject(context.Background(), snap.ID, snap.OwnerID, "dates blocked"))

	upd := uow.tx.reservations.statusUpdates[0]
	assert.Equal(t, reservation.StatusCancelled, upd.To)
	assert.Equal(t, "rejected by owner: dates blocked", upd.AppendNote)
}

func TestReservationConfirmCommand(t *testing.T) {
	t.Run("owner confirms a verified stay", func(t *testing.T) {
		snap := builder.NewReservationBuilder().WithStatus("PAYMENT_VERIFIED").BuildSnapshot()
		uow := transitionUoW(snap, 1)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		require.NoError(t, svc.Confirm(context.Background(), snap.ID, snap.OwnerID))

		upd := uow.tx.reservations.statusUpdates[0]
		assert.Equal(t, reservation.StatusPaymentVerified, upd.From)
		assert.Equal(t, reservation.StatusConfirmed, upd.To)
		assert.True(t, upd.SetConfirmedAt)
	})

	t.Run("cannot confirm before payment", func(t *testing.T) {
		snap := builder.NewReservationBuilder().AsAwaitingPayment().BuildSnapshot()
		uow := transitionUoW(snap, 1)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		err := svc.Confirm(context.Background(), snap.ID, snap.OwnerID)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestReservationCancelCommand(t *testing.T) {
	t.Run("tenant cancels with note", func(t *testing.T) {
		snap := builder.NewReservationBuilder().AsAwaitingPayment().BuildSnapshot()
		uow := transitionUoW(snap, 1)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		require.NoError(t, svc.Cancel(context.Background(), snap.ID, snap.TenantID, "plans changed"))

		upd := uow.tx.reservations.statusUpdates[0]
		assert.True(t, upd.FromAnyActive)
		assert.Equal(t, reservation.StatusCancelled, upd.To)
		assert.Equal(t, "cancelled by tenant: plans changed", upd.AppendNote)

		require.Len(t, uow.tx.notifications.jobs, 1)
		assert.Equal(t, "reservation.cancelled", uow.tx.notifications.jobs[0].topic)
	})

	t.Run("owner cancels a confirmed stay", func(t *testing.T) {
		snap := builder.NewReservationBuilder().AsConfirmed().BuildSnapshot()
		uow := transitionUoW(snap, 1)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		require.NoError(t, svc.Cancel(context.Background(), snap.ID, snap.OwnerID, "property damaged"))
		assert.Equal(t, "cancelled by owner: property damaged", uow.tx.reservations.statusUpdates[0].AppendNote)
	})

	t.Run("stranger is not a party", func(t *testing.T) {
		snap := builder.NewReservationBuilder().BuildSnapshot()
		uow := transitionUoW(snap, 1)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		err := svc.Cancel(context.Background(), snap.ID, uuid.New(), "reason")
		require.ErrorIs(t, err, errs.ErrNotReservationParty)
	})

	t.Run("already cancelled", func(t *testing.T) {
		snap := builder.NewReservationBuilder().AsCancelled().BuildSnapshot()
		uow := transitionUoW(snap, 1)
		svc := commands.NewReservationCommands(uow, testFactory(), nil, clock.NewMockClock(testNow))

		err := svc.Cancel(context.Background(), snap.ID, snap.TenantID, "again")
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
