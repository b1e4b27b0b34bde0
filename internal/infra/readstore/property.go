package readstore

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PropertyReadStore struct {
	db db.DBTX
}

func NewPropertyReadStore(dbtx db.DBTX) *PropertyReadStore {
	return &PropertyReadStore{db: dbtx}
}

const propertySnapshotSQL = `
SELECT id, owner_id, name, capacity, daily_rate_cents, weekly_rate_cents, currency, active
FROM properties
WHERE id = $1`

func (r *PropertyReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	var (
		snap   shared.PropertySnapshot
		weekly pgtype.Int8
	)
	err := r.db.QueryRow(ctx, propertySnapshotSQL, id).Scan(
		&snap.ID, &snap.OwnerID, &snap.Name, &snap.Capacity,
		&snap.DailyRateCents, &weekly, &snap.Currency, &snap.Active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property by ID", err)
	}
	snap.WeeklyRateCents = pgconv.Int64PtrFromPgtype(weekly)
	return &snap, nil
}

func (r *PropertyReadStore) OwnerOf(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error) {
	var ownerID uuid.UUID
	err := r.db.QueryRow(ctx, "SELECT owner_id FROM properties WHERE id = $1", propertyID).Scan(&ownerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find property owner", err)
	}
	return ownerID, nil
}
