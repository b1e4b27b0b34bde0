package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type PropertySnapshot struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Name            string
	Capacity        int
	DailyRateCents  int64
	WeeklyRateCents *int64
	Currency        string
	Active          bool
}

type ReservationSnapshot struct {
	ID          uuid.UUID
	Code        string
	PropertyID  uuid.UUID
	OwnerID     uuid.UUID
	TenantID    uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	Guests      int
	PriceCents  int64
	Currency    string
	Status      string
	ConfirmedAt *time.Time
}

type PaymentSnapshot struct {
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
