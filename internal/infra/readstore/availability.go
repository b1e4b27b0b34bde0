package readstore

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

// Overlap on half-open ranges: existing.start < to AND from < existing.end.
const overlappingStaysSQL = `
SELECT start_date, end_date
FROM reservations
WHERE property_id = $1
  AND status <> 'CANCELLED'
  AND start_date < $3
  AND $2 < end_date
ORDER BY start_date`

const isAvailableSQL = `
SELECT NOT EXISTS (
	SELECT 1
	FROM reservations
	WHERE property_id = $1
	  AND status <> 'CANCELLED'
	  AND start_date < $3
	  AND $2 < end_date
)`

// IsAvailable is an advisory pre-check; the exclusion constraint on
// reservations is what actually guarantees no double booking.
func (r *AvailabilityReadStore) IsAvailable(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error) {
	var available bool
	err := r.db.QueryRow(ctx, isAvailableSQL, propertyID, pgconv.DateToPgtype(start), pgconv.DateToPgtype(end)).Scan(&available)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check availability", err)
	}
	return available, nil
}

func (r *AvailabilityReadStore) OverlappingStays(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]queries.StayRange, error) {
	rows, err := r.db.Query(ctx, overlappingStaysSQL, propertyID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping stays", err)
	}
	defer rows.Close()

	var result []queries.StayRange
	for rows.Next() {
		var start, end pgtype.Date
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan stay range", err)
		}
		result = append(result, queries.StayRange{
			Start: pgconv.DateFromPgtype(start),
			End:   pgconv.DateFromPgtype(end),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read stay ranges", err)
	}
	return result, nil
}
