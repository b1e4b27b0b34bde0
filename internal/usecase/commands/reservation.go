package commands

import (
	"context"
	"encoding/json"
	"errors"

	"stayhub/internal/domain/property"
	"stayhub/internal/domain/reservation"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

// Retries the whole creation transaction when the generated code collides.
const maxCodeAttempts = 3

type ReservationCommands interface {
	Request(ctx context.Context, req reqdto.CreateReservationRequest, tenantID uuid.UUID) (*queries.ReservationView, error)
	Approve(ctx context.Context, reservationID, actorID uuid.UUID) error
	Reject(ctx context.Context, reservationID, actorID uuid.UUID, reason string) error
	Confirm(ctx context.Context, reservationID, actorID uuid.UUID) error
	Cancel(ctx context.Context, reservationID, actorID uuid.UUID, reason string) error
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	factory            *reservation.Factory
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	cl clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		factory:            factory,
		reservationQueries: reservationQueries,
		clock:              cl,
	}
}

func (u *reservationCommandsImpl) Request(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	tenantID uuid.UUID,
) (*queries.ReservationView, error) {
	prop, err := u.loadProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	start, end, err := req.StayDates()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStayPeriod)
	}

	var reservationID uuid.UUID
	for attempt := 0; ; attempt++ {
		entity, err := u.factory.CreateReservation(prop, tenantID, start, end, req.Guests, req.GetNote())
		if err != nil {
			return nil, markFactoryError(err)
		}

		reservationID, err = u.insertReservation(ctx, entity)
		if err == nil {
			break
		}
		if infra.IsKind(err, infra.KindDuplicateKey) && attempt < maxCodeAttempts-1 {
			continue
		}
		return nil, err
	}

	view, err := u.reservationQueries.GetByID(ctx, tenantID, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *reservationCommandsImpl) insertReservation(ctx context.Context, entity *reservation.Reservation) (uuid.UUID, error) {
	var reservationID uuid.UUID
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Advisory pre-check for a friendly error; the exclusion
		// constraint remains the authority under concurrency.
		available, err := tx.Reads().IsAvailable(ctx, entity.PropertyID(), entity.Period().Start(), entity.Period().End())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !available {
			return errs.ErrDatesUnavailable
		}

		id, err := tx.Reservations().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, errs.ErrDatesUnavailable)
			}
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, errs.ErrPropertyNotFound)
			}
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return err
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		reservationID = id

		return u.enqueueEvent(ctx, tx, "reservation.requested", map[string]any{
			"reservation_id": id,
			"code":           entity.Code(),
			"property_id":    entity.PropertyID(),
			"tenant_id":      entity.TenantID(),
			"status":         entity.Status().String(),
		})
	})
	if err != nil {
		return uuid.Nil, err
	}
	return reservationID, nil
}

func (u *reservationCommandsImpl) Approve(ctx context.Context, reservationID, actorID uuid.UUID) error {
	return u.transition(ctx, reservationID, transitionSpec{
		topic: "reservation.approved",
		from:  reservation.StatusRequested,
		to:    reservation.StatusAwaitingPayment,
		authorize: func(snap *shared.ReservationSnapshot) error {
			return ownerOnly(snap, actorID)
		},
	})
}

func (u *reservationCommandsImpl) Reject(ctx context.Context, reservationID, actorID uuid.UUID, reason string) error {
	return u.transition(ctx, reservationID, transitionSpec{
		topic:      "reservation.rejected",
		from:       reservation.StatusRequested,
		to:         reservation.StatusCancelled,
		appendNote: "rejected by owner: " + reason,
		authorize: func(snap *shared.ReservationSnapshot) error {
			return ownerOnly(snap, actorID)
		},
	})
}

func (u *reservationCommandsImpl) Confirm(ctx context.Context, reservationID, actorID uuid.UUID) error {
	return u.transition(ctx, reservationID, transitionSpec{
		topic:          "reservation.confirmed",
		from:           reservation.StatusPaymentVerified,
		to:             reservation.StatusConfirmed,
		setConfirmedAt: true,
		authorize: func(snap *shared.ReservationSnapshot) error {
			return ownerOnly(snap, actorID)
		},
	})
}

func (u *reservationCommandsImpl) Cancel(ctx context.Context, reservationID, actorID uuid.UUID, reason string) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := u.loadReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}

		var role reservation.PartyRole
		switch actorID {
		case snap.TenantID:
			role = reservation.RoleTenant
		case snap.OwnerID:
			role = reservation.RoleOwner
		default:
			return errs.ErrNotReservationParty
		}

		current := reservation.Status(snap.Status)
		if current == reservation.StatusCancelled {
			return invalidTransition(current, reservation.StatusCancelled)
		}

		rows, err := tx.Reservations().UpdateStatus(ctx, tx.DB(), shared.StatusUpdate{
			ID:            reservationID,
			FromAnyActive: true,
			To:            reservation.StatusCancelled,
			AppendNote:    "cancelled by " + role.String() + ": " + reason,
			Now:           u.clock.Now(),
		})
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if rows == 0 {
			return u.reportLostRace(ctx, tx, reservationID, reservation.StatusCancelled)
		}

		return u.enqueueEvent(ctx, tx, "reservation.cancelled", map[string]any{
			"reservation_id": reservationID,
			"code":           snap.Code,
			"cancelled_by":   role.String(),
			"reason":         reason,
		})
	})
}

// transitionSpec describes one owner-driven CAS edge of the status
// machine.
type transitionSpec struct {
	topic          string
	from           reservation.Status
	to             reservation.Status
	appendNote     string
	setConfirmedAt bool
	authorize      func(snap *shared.ReservationSnapshot) error
}

func (u *reservationCommandsImpl) transition(ctx context.Context, reservationID uuid.UUID, spec transitionSpec) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := u.loadReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if err := spec.authorize(snap); err != nil {
			return err
		}

		current := reservation.Status(snap.Status)
		if current != spec.from {
			return invalidTransition(current, spec.to)
		}

		rows, err := tx.Reservations().UpdateStatus(ctx, tx.DB(), shared.StatusUpdate{
			ID:             reservationID,
			From:           spec.from,
			To:             spec.to,
			AppendNote:     spec.appendNote,
			SetConfirmedAt: spec.setConfirmedAt,
			Now:            u.clock.Now(),
		})
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if rows == 0 {
			return u.reportLostRace(ctx, tx, reservationID, spec.to)
		}

		return u.enqueueEvent(ctx, tx, spec.topic, map[string]any{
			"reservation_id": reservationID,
			"code":           snap.Code,
			"status":         spec.to.String(),
		})
	})
}

func (u *reservationCommandsImpl) loadProperty(ctx context.Context, propertyID uuid.UUID) (*property.Property, error) {
	snap, err := u.uow.CommandReads().PropertyByID(ctx, propertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrPropertyNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	prop, err := property.NewProperty(
		snap.ID,
		snap.OwnerID,
		snap.Name,
		snap.Capacity,
		property.RateCard{DailyCents: snap.DailyRateCents, WeeklyCents: snap.WeeklyRateCents},
		snap.Currency,
		snap.Active,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return prop, nil
}

func (u *reservationCommandsImpl) loadReservation(ctx context.Context, tx shared.Tx, reservationID uuid.UUID) (*shared.ReservationSnapshot, error) {
	snap, err := tx.Reads().ReservationByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snap, nil
}

// reportLostRace re-reads the row after a CAS miss so the caller learns
// the state that actually blocked the action.
func (u *reservationCommandsImpl) reportLostRace(ctx context.Context, tx shared.Tx, reservationID uuid.UUID, requested reservation.Status) error {
	snap, err := tx.Reads().ReservationByID(ctx, reservationID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return invalidTransition(reservation.Status(snap.Status), requested)
}

func (u *reservationCommandsImpl) enqueueEvent(ctx context.Context, tx shared.Tx, topic string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, body, u.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func ownerOnly(snap *shared.ReservationSnapshot, actorID uuid.UUID) error {
	if actorID != snap.OwnerID {
		return errs.ErrNotReservationParty
	}
	return nil
}

func invalidTransition(current, requested reservation.Status) error {
	return errs.Mark(reservation.NewInvalidTransitionError(current, requested), errs.ErrInvalidTransition)
}

func markFactoryError(err error) error {
	switch {
	case errors.Is(err, reservation.ErrOwnProperty):
		return errs.Mark(err, errs.ErrOwnPropertyBooking)
	case errors.Is(err, property.ErrInactive):
		return errs.Mark(err, errs.ErrPropertyNotFound)
	case errors.Is(err, reservation.ErrNoGuests), errors.Is(err, reservation.ErrTooManyGuests):
		return errs.Mark(err, errs.ErrGuestsExceedLimit)
	case errors.Is(err, reservation.ErrEndNotAfterStart), errors.Is(err, reservation.ErrStartInPast):
		return errs.Mark(err, errs.ErrInvalidStayPeriod)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
