package response

import (
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID                uuid.UUID  `json:"id"`
	ReservationID     uuid.UUID  `json:"reservationId"`
	PayerID           uuid.UUID  `json:"payerId"`
	AmountCents       int64      `json:"amountCents"`
	Currency          string     `json:"currency"`
	SessionID         string     `json:"sessionId"`
	ExternalPaymentID *string    `json:"externalPaymentId,omitempty"`
	Status            string     `json:"status"`
	RefundReason      *string    `json:"refundReason,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type CheckoutResponse struct {
	PaymentID   uuid.UUID `json:"paymentId"`
	SessionID   string    `json:"sessionId"`
	RedirectURL string    `json:"redirectUrl"`
}

func FromPaymentView(rm *queries.PaymentView) *PaymentResponse {
	return &PaymentResponse{
		ID:                rm.ID,
		ReservationID:     rm.ReservationID,
		PayerID:           rm.PayerID,
		AmountCents:       rm.AmountCents,
		Currency:          rm.Currency,
		SessionID:         rm.SessionID,
		ExternalPaymentID: rm.ExternalPaymentID,
		Status:            rm.Status,
		RefundReason:      rm.RefundReason,
		CreatedAt:         rm.CreatedAt,
		UpdatedAt:         rm.UpdatedAt,
	}
}

func FromPaymentViews(rms []*queries.PaymentView) []*PaymentResponse {
	out := make([]*PaymentResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromPaymentView(rm)
	}
	return out
}
