//go:build unit || e2e

package builder

import (
	"time"

	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID           uuid.UUID
	Code         string
	PropertyID   uuid.UUID
	PropertyName string
	OwnerID      uuid.UUID
	TenantID     uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	Guests       int
	PriceCents   int64
	Currency     string
	Status       string
	Note         string
	RequestedAt  time.Time
	ConfirmedAt  *time.Time
	UpdatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 14)
	return &ReservationBuilder{
		ID:           uuid.New(),
		Code:         "ST-7K2M9QRX",
		PropertyID:   uuid.New(),
		PropertyName: "Seaside Cottage",
		OwnerID:      uuid.New(),
		TenantID:     uuid.New(),
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 3),
		Guests:       2,
		PriceCents:   30000,
		Currency:     "USD",
		Status:       "REQUESTED",
		Note:         "",
		RequestedAt:  now,
		UpdatedAt:    now,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:           r.ID,
		Code:         r.Code,
		PropertyID:   r.PropertyID,
		PropertyName: r.PropertyName,
		OwnerID:      r.OwnerID,
		TenantID:     r.TenantID,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Guests:       r.Guests,
		PriceCents:   r.PriceCents,
		Currency:     r.Currency,
		Status:       r.Status,
		Note:         r.Note,
		RequestedAt:  r.RequestedAt,
		ConfirmedAt:  r.ConfirmedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:           r.ID,
		Code:         r.Code,
		PropertyID:   r.PropertyID,
		PropertyName: r.PropertyName,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Status:       r.Status,
		PriceCents:   r.PriceCents,
		RequestedAt:  r.RequestedAt,
	}
}

func (r *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:          r.ID,
		Code:        r.Code,
		PropertyID:  r.PropertyID,
		OwnerID:     r.OwnerID,
		TenantID:    r.TenantID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Guests:      r.Guests,
		PriceCents:  r.PriceCents,
		Currency:    r.Currency,
		Status:      r.Status,
		ConfirmedAt: r.ConfirmedAt,
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	var note *string
	if r.Note != "" {
		n := r.Note
		note = &n
	}
	return reqdto.CreateReservationRequest{
		PropertyID: r.PropertyID,
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		Guests:     r.Guests,
		Note:       note,
	}
}

// Fluent builder methods
func (r *ReservationBuilder) WithID(id uuid.UUID) *ReservationBuilder {
	r.ID = id
	return r
}

func (r *ReservationBuilder) WithPropertyID(propertyID uuid.UUID) *ReservationBuilder {
	r.PropertyID = propertyID
	return r
}

func (r *ReservationBuilder) WithOwnerID(ownerID uuid.UUID) *ReservationBuilder {
	r.OwnerID = ownerID
	return r
}

func (r *ReservationBuilder) WithTenantID(tenantID uuid.UUID) *ReservationBuilder {
	r.TenantID = tenantID
	return r
}

func (r *ReservationBuilder) WithStay(start, end time.Time) *ReservationBuilder {
	r.StartDate = start
	r.EndDate = end
	return r
}

func (r *ReservationBuilder) WithGuests(guests int) *ReservationBuilder {
	r.Guests = guests
	return r
}

func (r *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	r.Status = status
	return r
}

func (r *ReservationBuilder) WithNote(note string) *ReservationBuilder {
	r.Note = note
	return r
}

func (r *ReservationBuilder) AsAwaitingPayment() *ReservationBuilder {
	r.Status = "AWAITING_PAYMENT"
	return r
}

func (r *ReservationBuilder) AsConfirmed() *ReservationBuilder {
	r.Status = "CONFIRMED"
	confirmedAt := r.RequestedAt.Add(time.Hour)
	r.ConfirmedAt = &confirmedAt
	return r
}

func (r *ReservationBuilder) AsCancelled() *ReservationBuilder {
	r.Status = "CANCELLED"
	return r
}
