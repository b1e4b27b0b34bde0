package queries

import (
	"context"
	"sort"
	"time"

	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

// CalendarQueries is the public occupancy view: which days of a property
// are taken, without exposing who took them.
type CalendarQueries interface {
	OccupiedDates(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]time.Time, error)
}

type calendarQueriesImpl struct {
	availability AvailabilityReadStore
}

func NewCalendarQueries(availability AvailabilityReadStore) CalendarQueries {
	return &calendarQueriesImpl{availability: availability}
}

// OccupiedDates expands every non-cancelled stay overlapping [from,to)
// into calendar days, clamped to the window, deduplicated and sorted.
func (q *calendarQueriesImpl) OccupiedDates(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	from = truncateDay(from)
	to = truncateDay(to)
	if !from.Before(to) {
		return nil, errs.ErrInvalidStayPeriod
	}

	stays, err := q.availability.OverlappingStays(ctx, propertyID, from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	seen := make(map[time.Time]struct{})
	for _, stay := range stays {
		start := stay.Start
		if start.Before(from) {
			start = from
		}
		end := stay.End
		if end.After(to) {
			end = to
		}
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			seen[d] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
