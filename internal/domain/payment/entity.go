// Package payment models a single payment attempt against a reservation.
// The reconciler owns every state write; webhook delivery and client
// polling both funnel into the same compare-and-set completion.
package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotPending        = errors.New("payment is not pending")
	ErrNotCompleted      = errors.New("payment is not completed")
	ErrNotPayer          = errors.New("actor is not the payer of this payment")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrMissingSession    = errors.New("payment requires a checkout session id")
	ErrEmptyRefundReason = errors.New("refund requires a reason")
)

type InvalidTransitionError struct {
	Current   Status
	Requested Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid payment transition from %s to %s", e.Current, e.Requested)
}

type Payment struct {
	id                uuid.UUID
	reservationID     uuid.UUID
	payerID           uuid.UUID
	amountCents       int64
	currency          string
	sessionID         string
	externalPaymentID *string
	status            Status
	refundReason      *string
	createdAt         time.Time
	updatedAt         time.Time
}

// NewPendingPayment opens a payment attempt bound to a fresh checkout
// session. Amount and currency are copied from the reservation and never
// change afterwards.
func NewPendingPayment(reservationID, payerID uuid.UUID, sessionID string, amountCents int64, currency string, now time.Time) (*Payment, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if sessionID == "" {
		return nil, ErrMissingSession
	}
	return &Payment{
		id:            uuid.New(),
		reservationID: reservationID,
		payerID:       payerID,
		amountCents:   amountCents,
		currency:      currency,
		sessionID:     sessionID,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructPayment(
	id, reservationID, payerID uuid.UUID,
	amountCents int64,
	currency string,
	sessionID string,
	externalPaymentID *string,
	status Status,
	refundReason *string,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:                id,
		reservationID:     reservationID,
		payerID:           payerID,
		amountCents:       amountCents,
		currency:          currency,
		sessionID:         sessionID,
		externalPaymentID: externalPaymentID,
		status:            status,
		refundReason:      refundReason,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (p *Payment) ID() uuid.UUID            { return p.id }
func (p *Payment) ReservationID() uuid.UUID { return p.reservationID }
func (p *Payment) PayerID() uuid.UUID       { return p.payerID }
func (p *Payment) AmountCents() int64       { return p.amountCents }
func (p *Payment) Currency() string         { return p.currency }
func (p *Payment) SessionID() string        { return p.sessionID }
func (p *Payment) Status() Status           { return p.status }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }

func (p *Payment) ExternalPaymentID() *string {
	if p.externalPaymentID == nil {
		return nil
	}
	s := *p.externalPaymentID
	return &s
}

func (p *Payment) RefundReason() *string {
	if p.refundReason == nil {
		return nil
	}
	s := *p.refundReason
	return &s
}

// Complete settles the payment with the provider's payment id. Calling it
// on an already completed payment is not an error at the reconciler level;
// the storage CAS decides the single winner. At the entity level we keep
// it strict so misuse shows up in tests.
func (p *Payment) Complete(externalPaymentID string, now time.Time) error {
	if p.status != StatusPending {
		return &InvalidTransitionError{Current: p.status, Requested: StatusCompleted}
	}
	p.status = StatusCompleted
	p.externalPaymentID = &externalPaymentID
	p.updatedAt = now
	return nil
}

// Cancel abandons a pending checkout. Only the original payer may do so.
func (p *Payment) Cancel(actorID uuid.UUID, now time.Time) error {
	if actorID != p.payerID {
		return ErrNotPayer
	}
	if p.status != StatusPending {
		return &InvalidTransitionError{Current: p.status, Requested: StatusCancelled}
	}
	p.status = StatusCancelled
	p.updatedAt = now
	return nil
}

// Refund reverses a completed payment. It does not touch the reservation;
// cancelling the stay is a separate action by a party to it.
func (p *Payment) Refund(reason string, now time.Time) error {
	if reason == "" {
		return ErrEmptyRefundReason
	}
	if p.status != StatusCompleted {
		return &InvalidTransitionError{Current: p.status, Requested: StatusRefunded}
	}
	p.status = StatusRefunded
	p.refundReason = &reason
	p.updatedAt = now
	return nil
}
