package queries

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	// GetByID is visible only to the reservation's tenant and the property
	// owner; anyone else sees NotFound rather than a permission hint.
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*ReservationView, error)
	GetByCode(ctx context.Context, actorID uuid.UUID, code string) (*ReservationView, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
	ListByProperty(ctx context.Context, actorID, propertyID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
}

type reservationQueriesImpl struct {
	store      ReservationReadStore
	properties PropertyReadStore
}

func NewReservationQueries(store ReservationReadStore, properties PropertyReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store, properties: properties}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return q.authorize(view, actorID)
}

func (q *reservationQueriesImpl) GetByCode(ctx context.Context, actorID uuid.UUID, code string) (*ReservationView, error) {
	view, err := q.store.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return q.authorize(view, actorID)
}

func (q *reservationQueriesImpl) authorize(view *ReservationView, actorID uuid.UUID) (*ReservationView, error) {
	if view.TenantID != actorID && view.OwnerID != actorID {
		return nil, errs.ErrReservationNotFound
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByTenant(ctx context.Context, tenantID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*ReservationListItem
		err  error
	)
	if after == nil || after.After == "" {
		rows, err = q.store.FindByTenantFirstPage(ctx, tenantID, int32(limit))
	} else {
		lastAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, decodeErr
		}
		rows, err = q.store.FindByTenantKeyset(ctx, tenantID, lastAt, lastID, int32(limit))
	}
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return rows, nextCursor(rows, limit), nil
}

func (q *reservationQueriesImpl) ListByProperty(ctx context.Context, actorID, propertyID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	ownerID, err := q.properties.OwnerOf(ctx, propertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.Mark(err, errs.ErrPropertyNotFound)
		}
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if ownerID != actorID {
		return nil, nil, errs.ErrPropertyNotFound
	}

	limit = ValidateLimit(limit)

	var rows []*ReservationListItem
	if after == nil || after.After == "" {
		rows, err = q.store.FindByPropertyFirstPage(ctx, propertyID, int32(limit))
	} else {
		lastAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, decodeErr
		}
		rows, err = q.store.FindByPropertyKeyset(ctx, propertyID, lastAt, lastID, int32(limit))
	}
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return rows, nextCursor(rows, limit), nil
}

func nextCursor(rows []*ReservationListItem, limit int) *Cursor {
	if len(rows) < limit || len(rows) == 0 {
		return nil
	}
	last := rows[len(rows)-1]
	return &Cursor{After: EncodeAfterCursor(last.RequestedAt, last.ID)}
}
