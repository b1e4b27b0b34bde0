// Package property holds the read-only view of a rentable listing. Listing
// CRUD belongs to an external service; the reservation engine only needs
// ownership, capacity and the rate schedule.
package property

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrInvalidRate     = errors.New("rates must be positive")
	ErrInactive        = errors.New("property is not active")
)

// RateCard is the nightly/weekly rate schedule. WeeklyCents is nil when the
// owner has not published a weekly tier.
type RateCard struct {
	DailyCents  int64
	WeeklyCents *int64
}

type Property struct {
	id       uuid.UUID
	ownerID  uuid.UUID
	name     string
	capacity int
	rates    RateCard
	currency string
	active   bool
}

func NewProperty(id, ownerID uuid.UUID, name string, capacity int, rates RateCard, currency string, active bool) (*Property, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if rates.DailyCents <= 0 {
		return nil, ErrInvalidRate
	}
	if rates.WeeklyCents != nil && *rates.WeeklyCents <= 0 {
		return nil, ErrInvalidRate
	}
	return &Property{
		id:       id,
		ownerID:  ownerID,
		name:     name,
		capacity: capacity,
		rates:    rates,
		currency: currency,
		active:   active,
	}, nil
}

func (p *Property) ID() uuid.UUID      { return p.id }
func (p *Property) OwnerID() uuid.UUID { return p.ownerID }
func (p *Property) Name() string       { return p.name }
func (p *Property) Capacity() int      { return p.capacity }
func (p *Property) Rates() RateCard    { return p.rates }
func (p *Property) Currency() string   { return p.currency }
func (p *Property) IsActive() bool     { return p.active }

func (p *Property) IsOwnedBy(userID uuid.UUID) bool {
	return p.ownerID == userID
}
