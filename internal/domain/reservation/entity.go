package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOwnProperty        = errors.New("tenant cannot reserve their own property")
	ErrTooManyGuests      = errors.New("guest count exceeds property capacity")
	ErrNoGuests           = errors.New("guest count must be positive")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrNotParty           = errors.New("actor is not a party to this reservation")
	ErrAlreadyConfirmedAt = errors.New("confirmation timestamp already set")
)

// InvalidTransitionError reports a state-machine violation, naming the
// current and requested state so callers can surface "this reservation can
// no longer be modified" with context.
type InvalidTransitionError struct {
	Current   Status
	Requested Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.Current, e.Requested)
}

func NewInvalidTransitionError(current, requested Status) error {
	return &InvalidTransitionError{Current: current, Requested: requested}
}

// Reservation is the aggregate root of the lifecycle engine. State moves
// only through the transition methods below; the store applies each write
// as a compare-and-set on the previous status.
type Reservation struct {
	id          uuid.UUID
	code        string
	propertyID  uuid.UUID
	tenantID    uuid.UUID
	period      StayPeriod
	guests      int
	price       Money
	currency    string
	status      Status
	note        Note
	requestedAt time.Time
	confirmedAt *time.Time
	updatedAt   time.Time
}

func ReconstructReservation(
	id uuid.UUID,
	code string,
	propertyID, tenantID uuid.UUID,
	period StayPeriod,
	guests int,
	price Money,
	currency string,
	status Status,
	note Note,
	requestedAt time.Time,
	confirmedAt *time.Time,
	updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		code:        code,
		propertyID:  propertyID,
		tenantID:    tenantID,
		period:      period,
		guests:      guests,
		price:       price,
		currency:    currency,
		status:      status,
		note:        note,
		requestedAt: requestedAt,
		confirmedAt: confirmedAt,
		updatedAt:   updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) Code() string           { return r.code }
func (r *Reservation) PropertyID() uuid.UUID  { return r.propertyID }
func (r *Reservation) TenantID() uuid.UUID    { return r.tenantID }
func (r *Reservation) Period() StayPeriod     { return r.period }
func (r *Reservation) Guests() int            { return r.guests }
func (r *Reservation) Price() Money           { return r.price }
func (r *Reservation) Currency() string       { return r.currency }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) Note() Note             { return r.note }
func (r *Reservation) RequestedAt() time.Time { return r.requestedAt }
func (r *Reservation) ConfirmedAt() *time.Time {
	if r.confirmedAt == nil {
		return nil
	}
	t := *r.confirmedAt
	return &t
}
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// RoleOf resolves the actor's side given the property owner. The owner is
// never the tenant; the factory rejects self-bookings at creation.
func (r *Reservation) RoleOf(actorID, propertyOwnerID uuid.UUID) (PartyRole, error) {
	switch actorID {
	case r.tenantID:
		return RoleTenant, nil
	case propertyOwnerID:
		return RoleOwner, nil
	default:
		return "", ErrNotParty
	}
}

func (r *Reservation) transition(next Status) error {
	if !r.status.CanTransitionTo(next) {
		return NewInvalidTransitionError(r.status, next)
	}
	r.status = next
	return nil
}

// Approve moves an owner-accepted request to AWAITING_PAYMENT.
func (r *Reservation) Approve() error {
	if r.status != StatusRequested {
		return NewInvalidTransitionError(r.status, StatusAwaitingPayment)
	}
	return r.transition(StatusAwaitingPayment)
}

// Reject cancels a pending request, recording the owner's reason.
func (r *Reservation) Reject(reason string) error {
	if r.status != StatusRequested {
		return NewInvalidTransitionError(r.status, StatusCancelled)
	}
	if err := r.transition(StatusCancelled); err != nil {
		return err
	}
	r.note = r.note.Append("rejected by owner: " + reason)
	return nil
}

// MarkPaymentVerified is driven exclusively by the payment reconciler once
// the matching payment reaches COMPLETED.
func (r *Reservation) MarkPaymentVerified() error {
	if r.status != StatusAwaitingPayment {
		return NewInvalidTransitionError(r.status, StatusPaymentVerified)
	}
	return r.transition(StatusPaymentVerified)
}

// Confirm finalizes a paid stay and stamps the confirmation time once.
func (r *Reservation) Confirm(now time.Time) error {
	if r.status != StatusPaymentVerified {
		return NewInvalidTransitionError(r.status, StatusConfirmed)
	}
	if r.confirmedAt != nil {
		return ErrAlreadyConfirmedAt
	}
	if err := r.transition(StatusConfirmed); err != nil {
		return err
	}
	t := now
	r.confirmedAt = &t
	return nil
}

// Cancel ends the reservation from any non-cancelled state, appending the
// acting role and reason to the note.
func (r *Reservation) Cancel(role PartyRole, reason string) error {
	if r.status == StatusCancelled {
		return NewInvalidTransitionError(r.status, StatusCancelled)
	}
	if err := r.transition(StatusCancelled); err != nil {
		return err
	}
	r.note = r.note.Append(fmt.Sprintf("cancelled by %s: %s", role, reason))
	return nil
}
