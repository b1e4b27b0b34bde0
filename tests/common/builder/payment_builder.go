//go:build unit || e2e

package builder

import (
	"time"

	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentBuilder struct {
	ID                uuid.UUID
	ReservationID     uuid.UUID
	PayerID           uuid.UUID
	AmountCents       int64
	Currency          string
	SessionID         string
	ExternalPaymentID *string
	Status            string
	RefundReason      *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewPaymentBuilder() *PaymentBuilder {
	now := time.Now().UTC()
	return &PaymentBuilder{
		ID:            uuid.New(),
		ReservationID: uuid.New(),
		PayerID:       uuid.New(),
		AmountCents:   30000,
		Currency:      "USD",
		SessionID:     "cs_f2b1f7b47c0e4a58a37f3a1d9c5e8b21",
		Status:        "PENDING",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (p *PaymentBuilder) BuildView() *queries.PaymentView {
	return &queries.PaymentView{
		ID:                p.ID,
		ReservationID:     p.ReservationID,
		PayerID:           p.PayerID,
		AmountCents:       p.AmountCents,
		Currency:          p.Currency,
		SessionID:         p.SessionID,
		ExternalPaymentID: p.ExternalPaymentID,
		Status:            p.Status,
		RefundReason:      p.RefundReason,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (p *PaymentBuilder) BuildSnapshot() *shared.PaymentSnapshot {
	return &shared.PaymentSnapshot{
		ID:                p.ID,
		ReservationID:     p.ReservationID,
		PayerID:           p.PayerID,
		AmountCents:       p.AmountCents,
		Currency:          p.Currency,
		SessionID:         p.SessionID,
		ExternalPaymentID: p.ExternalPaymentID,
		Status:            p.Status,
		RefundReason:      p.RefundReason,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// Fluent builder methods
func (p *PaymentBuilder) WithID(id uuid.UUID) *PaymentBuilder {
	p.ID = id
	return p
}

func (p *PaymentBuilder) WithReservationID(reservationID uuid.UUID) *PaymentBuilder {
	p.ReservationID = reservationID
	return p
}

func (p *PaymentBuilder) WithPayerID(payerID uuid.UUID) *PaymentBuilder {
	p.PayerID = payerID
	return p
}

func (p *PaymentBuilder) WithSessionID(sessionID string) *PaymentBuilder {
	p.SessionID = sessionID
	return p
}

func (p *PaymentBuilder) WithAmount(amountCents int64, currency string) *PaymentBuilder {
	p.AmountCents = amountCents
	p.Currency = currency
	return p
}

func (p *PaymentBuilder) AsCompleted(externalPaymentID string) *PaymentBuilder {
	p.Status = "COMPLETED"
	p.ExternalPaymentID = &externalPaymentID
	return p
}

func (p *PaymentBuilder) AsRefunded(reason string) *PaymentBuilder {
	p.Status = "REFUNDED"
	p.RefundReason = &reason
	return p
}
