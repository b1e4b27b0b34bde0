package repository

import (
	"context"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

const createReservationSQL = `
INSERT INTO reservations (
	id, code, property_id, tenant_id, start_date, end_date,
	guests, price_cents, currency, status, note, requested_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
RETURNING id`

// Create inserts a REQUESTED reservation. The exclusion constraint on
// (property_id, daterange) arbitrates concurrent overlapping requests;
// losing the race surfaces as KindConflict.
func (r *ReservationRepository) Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createReservationSQL,
		res.ID(),
		res.Code(),
		res.PropertyID(),
		res.TenantID(),
		res.Period().Start(),
		res.Period().End(),
		res.Guests(),
		res.Price().Cents(),
		res.Currency(),
		res.Status().String(),
		res.Note().String(),
		res.RequestedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

const updateStatusSQL = `
UPDATE reservations SET
	status = $3,
	note = CASE WHEN $4 = '' THEN note
	            WHEN note = '' THEN $4
	            ELSE note || E'\n' || $4 END,
	confirmed_at = CASE WHEN $5 THEN $6 ELSE confirmed_at END,
	updated_at = $6
WHERE id = $1 AND status = $2`

const updateStatusAnyActiveSQL = `
UPDATE reservations SET
	status = $2,
	note = CASE WHEN $3 = '' THEN note
	            WHEN note = '' THEN $3
	            ELSE note || E'\n' || $3 END,
	updated_at = $4
WHERE id = $1 AND status <> 'CANCELLED'`

// UpdateStatus applies a compare-and-set on the stored status. Zero rows
// matched means the precondition no longer holds; the caller decides how
// to report the miss.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, upd shared.StatusUpdate) (int64, error) {
	if upd.FromAnyActive {
		tag, err := dbtx.Exec(ctx, updateStatusAnyActiveSQL,
			upd.ID, upd.To.String(), upd.AppendNote, upd.Now)
		if err != nil {
			return 0, infra.WrapRepoErr("failed to update reservation status", err)
		}
		return tag.RowsAffected(), nil
	}

	tag, err := dbtx.Exec(ctx, updateStatusSQL,
		upd.ID, upd.From.String(), upd.To.String(), upd.AppendNote, upd.SetConfirmedAt, upd.Now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update reservation status", err)
	}
	return tag.RowsAffected(), nil
}
