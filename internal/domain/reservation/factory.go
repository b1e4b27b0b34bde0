package reservation

import (
	"time"

	"stayhub/internal/domain/property"
	"stayhub/internal/pkg/clock"

	"github.com/google/uuid"
)

// CodeGenerator yields the human-readable reservation code. Injected so
// tests can produce deterministic codes.
type CodeGenerator func() (string, error)

type Factory struct {
	Clock clock.Clock
	Codes CodeGenerator
}

func NewFactory(clk clock.Clock, codes CodeGenerator) *Factory {
	return &Factory{Clock: clk, Codes: codes}
}

// CreateReservation validates a tenant request against the property and
// produces a REQUESTED reservation with its price frozen. Availability is
// not checked here; the store is the only authority on overlap.
func (f *Factory) CreateReservation(
	prop *property.Property,
	tenantID uuid.UUID,
	start, end time.Time,
	guests int,
	note Note,
) (*Reservation, error) {
	if prop.IsOwnedBy(tenantID) {
		return nil, ErrOwnProperty
	}
	if !prop.IsActive() {
		return nil, property.ErrInactive
	}
	if guests <= 0 {
		return nil, ErrNoGuests
	}
	if guests > prop.Capacity() {
		return nil, ErrTooManyGuests
	}

	now := f.Clock.Now()
	period, err := NewStayPeriod(start, end, now)
	if err != nil {
		return nil, err
	}

	price := Quote(prop.Rates(), period)
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}

	code, err := f.Codes()
	if err != nil {
		return nil, err
	}

	return &Reservation{
		id:          uuid.New(),
		code:        code,
		propertyID:  prop.ID(),
		tenantID:    tenantID,
		period:      period,
		guests:      guests,
		price:       price,
		currency:    prop.Currency(),
		status:      StatusRequested,
		note:        note,
		requestedAt: now,
		updatedAt:   now,
	}, nil
}
