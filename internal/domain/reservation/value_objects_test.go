//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewStayPeriod(t *testing.T) {
	now := day(2026, 3, 1)

	t.Run("valid period", func(t *testing.T) {
		p, err := reservation.NewStayPeriod(day(2026, 3, 10), day(2026, 3, 13), now)
		require.NoError(t, err)
		assert.Equal(t, day(2026, 3, 10), p.Start())
		assert.Equal(t, day(2026, 3, 13), p.End())
		assert.Equal(t, 3, p.Nights())
	})

	t.Run("same day start today is valid", func(t *testing.T) {
		p, err := reservation.NewStayPeriod(now, now.AddDate(0, 0, 1), now)
		require.NoError(t, err)
		assert.Equal(t, 1, p.Nights())
	})

	t.Run("truncates times to whole days", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
		end := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
		p, err := reservation.NewStayPeriod(start, end, now)
		require.NoError(t, err)
		assert.Equal(t, day(2026, 3, 10), p.Start())
		assert.Equal(t, day(2026, 3, 12), p.End())
		assert.Equal(t, 2, p.Nights())
	})

	t.Run("end equal to start", func(t *testing.T) {
		_, err := reservation.NewStayPeriod(day(2026, 3, 10), day(2026, 3, 10), now)
		require.ErrorIs(t, err, reservation.ErrEndNotAfterStart)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := reservation.NewStayPeriod(day(2026, 3, 13), day(2026, 3, 10), now)
		require.ErrorIs(t, err, reservation.ErrEndNotAfterStart)
	})

	t.Run("start in the past", func(t *testing.T) {
		_, err := reservation.NewStayPeriod(day(2026, 2, 27), day(2026, 3, 3), now)
		require.ErrorIs(t, err, reservation.ErrStartInPast)
	})
}

func TestStayPeriodOverlaps(t *testing.T) {
	base := reservation.ReconstructStayPeriod(day(2026, 3, 10), day(2026, 3, 13))

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"identical period", day(2026, 3, 10), day(2026, 3, 13), true},
		{"contained within", day(2026, 3, 11), day(2026, 3, 12), true},
		{"overlaps start", day(2026, 3, 8), day(2026, 3, 11), true},
		{"overlaps end", day(2026, 3, 12), day(2026, 3, 15), true},
		{"back to back before", day(2026, 3, 7), day(2026, 3, 10), false},
		{"back to back after", day(2026, 3, 13), day(2026, 3, 16), false},
		{"strictly before", day(2026, 3, 1), day(2026, 3, 5), false},
		{"strictly after", day(2026, 3, 20), day(2026, 3, 25), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			other := reservation.ReconstructStayPeriod(c.start, c.end)
			assert.Equal(t, c.overlaps, base.Overlaps(other))
			assert.Equal(t, c.overlaps, other.Overlaps(base))
		})
	}
}

func TestStayPeriodDays(t *testing.T) {
	p := reservation.ReconstructStayPeriod(day(2026, 3, 10), day(2026, 3, 13))

	days := p.Days()
	require.Len(t, days, 3)
	assert.Equal(t, day(2026, 3, 10), days[0])
	assert.Equal(t, day(2026, 3, 11), days[1])
	assert.Equal(t, day(2026, 3, 12), days[2])
}

func TestNoteAppend(t *testing.T) {
	t.Run("append to empty note", func(t *testing.T) {
		n := reservation.NewNote("").Append("rejected by owner: dates blocked")
		assert.Equal(t, "rejected by owner: dates blocked", n.String())
	})

	t.Run("append preserves existing text", func(t *testing.T) {
		n := reservation.NewNote("arriving late").Append("cancelled by tenant: plans changed")
		assert.Equal(t, "arriving late\ncancelled by tenant: plans changed", n.String())
	})

	t.Run("appending empty line is a no-op", func(t *testing.T) {
		n := reservation.NewNote("arriving late").Append("")
		assert.Equal(t, "arriving late", n.String())
	})

	t.Run("IsEmpty", func(t *testing.T) {
		assert.True(t, reservation.NewNote("").IsEmpty())
		assert.False(t, reservation.NewNote("x").IsEmpty())
	})
}

func TestMoney(t *testing.T) {
	assert.Equal(t, int64(30000), reservation.NewMoney(30000).Cents())
	assert.False(t, reservation.NewMoney(0).IsNegative())
	assert.True(t, reservation.NewMoney(-1).IsNegative())
}
