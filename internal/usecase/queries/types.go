package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID           uuid.UUID  `json:"id"`
	Code         string     `json:"code"`
	PropertyID   uuid.UUID  `json:"property_id"`
	PropertyName string     `json:"property_name"`
	OwnerID      uuid.UUID  `json:"owner_id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Guests       int        `json:"guests"`
	PriceCents   int64      `json:"price_cents"`
	Currency     string     `json:"currency"`
	Status       string     `json:"status"`
	Note         string     `json:"note"`
	RequestedAt  time.Time  `json:"requested_at"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	PropertyID   uuid.UUID `json:"property_id"`
	PropertyName string    `json:"property_name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status"`
	PriceCents   int64     `json:"price_cents"`
	RequestedAt  time.Time `json:"requested_at"`
}

type PaymentView struct {
	ID                uuid.UUID  `json:"id"`
	ReservationID     uuid.UUID  `json:"reservation_id"`
	PayerID           uuid.UUID  `json:"payer_id"`
	AmountCents       int64      `json:"amount_cents"`
	Currency          string     `json:"currency"`
	SessionID         string     `json:"session_id"`
	ExternalPaymentID *string    `json:"external_payment_id,omitempty"`
	Status            string     `json:"status"`
	RefundReason      *string    `json:"refund_reason,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// StayRange is one occupied [start,end) range on a property's calendar.
type StayRange struct {
	Start time.Time
	End   time.Time
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByCode(ctx context.Context, code string) (*ReservationView, error)
	FindByTenantFirstPage(ctx context.Context, tenantID uuid.UUID, limit int32) ([]*ReservationListItem, error)
	FindByTenantKeyset(ctx context.Context, tenantID uuid.UUID, lastRequestedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationListItem, error)
	FindByPropertyFirstPage(ctx context.Context, propertyID uuid.UUID, limit int32) ([]*ReservationListItem, error)
	FindByPropertyKeyset(ctx context.Context, propertyID uuid.UUID, lastRequestedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationListItem, error)
}

type PaymentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	FindBySession(ctx context.Context, sessionID string) (*PaymentView, error)
	FindByReservation(ctx context.Context, reservationID uuid.UUID) ([]*PaymentView, error)
}

type AvailabilityReadStore interface {
	// OverlappingStays returns every non-cancelled [start,end) range on the
	// property that intersects [from,to). Filtering happens in SQL.
	OverlappingStays(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]StayRange, error)
}

type PropertyReadStore interface {
	OwnerOf(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error)
}
