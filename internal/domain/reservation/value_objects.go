package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEndNotAfterStart = errors.New("stay must end after it starts")
	ErrStartInPast      = errors.New("stay cannot start in the past")
)

// StayPeriod is a half-open date range [start, end). Times are truncated to
// whole days in UTC; a one-night stay has Nights() == 1.
type StayPeriod struct {
	start time.Time
	end   time.Time
}

func toDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewStayPeriod validates date order against the supplied current time so
// callers can inject a clock.
func NewStayPeriod(start, end, now time.Time) (StayPeriod, error) {
	s, e := toDay(start), toDay(end)
	if !s.Before(e) {
		return StayPeriod{}, ErrEndNotAfterStart
	}
	if s.Before(toDay(now)) {
		return StayPeriod{}, ErrStartInPast
	}
	return StayPeriod{start: s, end: e}, nil
}

// ReconstructStayPeriod rebuilds a period from stored dates without
// re-validating against the current time.
func ReconstructStayPeriod(start, end time.Time) StayPeriod {
	return StayPeriod{start: toDay(start), end: toDay(end)}
}

func (p StayPeriod) Start() time.Time {
	return p.start
}

func (p StayPeriod) End() time.Time {
	return p.end
}

func (p StayPeriod) Nights() int {
	return int(p.end.Sub(p.start).Hours() / 24)
}

// Overlaps uses half-open interval math: touching endpoints do not
// conflict, so back-to-back stays are fine.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.start.Before(other.end) && other.start.Before(p.end)
}

// Days expands the period into its calendar days, excluding the checkout
// day.
func (p StayPeriod) Days() []time.Time {
	days := make([]time.Time, 0, p.Nights())
	for d := p.start; d.Before(p.end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (p StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", p.start.Format(time.DateOnly), p.end.Format(time.DateOnly))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

// Note is the free-text field on a reservation. It is append-only: reasons
// for rejection or cancellation are added as new lines, never overwriting
// what the tenant wrote at request time.
type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) Append(line string) Note {
	if line == "" {
		return n
	}
	if n.value == "" {
		return Note{value: line}
	}
	return Note{value: n.value + "\n" + line}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
