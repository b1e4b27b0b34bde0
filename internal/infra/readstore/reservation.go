package readstore

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const reservationViewSQL = `
SELECT r.id, r.code, r.property_id, p.name, p.owner_id, r.tenant_id,
       r.start_date, r.end_date, r.guests, r.price_cents, r.currency,
       r.status, r.note, r.requested_at, r.confirmed_at, r.updated_at
FROM reservations r
JOIN properties p ON p.id = r.property_id`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, reservationViewSQL+" WHERE r.id = $1", id)
	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByCode(ctx context.Context, code string) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, reservationViewSQL+" WHERE r.code = $1", code)
	view, err := scanReservationView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by code", err)
	}
	return view, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		view        queries.ReservationView
		startDate   pgtype.Date
		endDate     pgtype.Date
		confirmedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.Code, &view.PropertyID, &view.PropertyName, &view.OwnerID, &view.TenantID,
		&startDate, &endDate, &view.Guests, &view.PriceCents, &view.Currency,
		&view.Status, &view.Note, &view.RequestedAt, &confirmedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.StartDate = pgconv.DateFromPgtype(startDate)
	view.EndDate = pgconv.DateFromPgtype(endDate)
	view.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	return &view, nil
}

const reservationListSQL = `
SELECT r.id, r.code, r.property_id, p.name, r.start_date, r.end_date,
       r.status, r.price_cents, r.requested_at
FROM reservations r
JOIN properties p ON p.id = r.property_id`

func (r *ReservationReadStore) FindByTenantFirstPage(ctx context.Context, tenantID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, reservationListSQL+`
 WHERE r.tenant_id = $1
 ORDER BY r.requested_at DESC, r.id DESC
 LIMIT $2`, tenantID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by tenant", err)
	}
	return collectListItems(rows)
}

func (r *ReservationReadStore) FindByTenantKeyset(ctx context.Context, tenantID uuid.UUID, lastRequestedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, reservationListSQL+`
 WHERE r.tenant_id = $1 AND (r.requested_at, r.id) < ($2, $3)
 ORDER BY r.requested_at DESC, r.id DESC
 LIMIT $4`, tenantID, lastRequestedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by tenant keyset", err)
	}
	return collectListItems(rows)
}

func (r *ReservationReadStore) FindByPropertyFirstPage(ctx context.Context, propertyID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, reservationListSQL+`
 WHERE r.property_id = $1
 ORDER BY r.requested_at DESC, r.id DESC
 LIMIT $2`, propertyID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by property", err)
	}
	return collectListItems(rows)
}

func (r *ReservationReadStore) FindByPropertyKeyset(ctx context.Context, propertyID uuid.UUID, lastRequestedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, reservationListSQL+`
 WHERE r.property_id = $1 AND (r.requested_at, r.id) < ($2, $3)
 ORDER BY r.requested_at DESC, r.id DESC
 LIMIT $4`, propertyID, lastRequestedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by property keyset", err)
	}
	return collectListItems(rows)
}

func collectListItems(rows pgx.Rows) ([]*queries.ReservationListItem, error) {
	defer rows.Close()

	var result []*queries.ReservationListItem
	for rows.Next() {
		var (
			item      queries.ReservationListItem
			startDate pgtype.Date
			endDate   pgtype.Date
		)
		err := rows.Scan(
			&item.ID, &item.Code, &item.PropertyID, &item.PropertyName,
			&startDate, &endDate, &item.Status, &item.PriceCents, &item.RequestedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		item.StartDate = pgconv.DateFromPgtype(startDate)
		item.EndDate = pgconv.DateFromPgtype(endDate)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return result, nil
}
