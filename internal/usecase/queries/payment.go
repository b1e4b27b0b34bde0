package queries

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type PaymentQueries interface {
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*PaymentView, error)
	ListByReservation(ctx context.Context, actorID, reservationID uuid.UUID) ([]*PaymentView, error)
}

type paymentQueriesImpl struct {
	store        PaymentReadStore
	reservations ReservationReadStore
}

func NewPaymentQueries(store PaymentReadStore, reservations ReservationReadStore) PaymentQueries {
	return &paymentQueriesImpl{store: store, reservations: reservations}
}

func (q *paymentQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*PaymentView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrPaymentNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := q.authorize(ctx, actorID, view.ReservationID); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *paymentQueriesImpl) ListByReservation(ctx context.Context, actorID, reservationID uuid.UUID) ([]*PaymentView, error) {
	if err := q.authorize(ctx, actorID, reservationID); err != nil {
		return nil, err
	}
	views, err := q.store.FindByReservation(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

// Payments are visible to the same parties as their reservation.
func (q *paymentQueriesImpl) authorize(ctx context.Context, actorID, reservationID uuid.UUID) error {
	res, err := q.reservations.FindByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrReservationNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if res.TenantID != actorID && res.OwnerID != actorID {
		return errs.ErrPaymentNotFound
	}
	return nil
}
