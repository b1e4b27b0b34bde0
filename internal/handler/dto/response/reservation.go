package response

import (
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ReservationResponse struct {
	ID           uuid.UUID  `json:"id"`
	Code         string     `json:"code"`
	PropertyID   uuid.UUID  `json:"propertyId"`
	PropertyName string     `json:"propertyName"`
	TenantID     uuid.UUID  `json:"tenantId"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate"`
	Nights       int        `json:"nights"`
	Guests       int        `json:"guests"`
	PriceCents   int64      `json:"priceCents"`
	Currency     string     `json:"currency"`
	Status       string     `json:"status"`
	Note         string     `json:"note,omitempty"`
	RequestedAt  time.Time  `json:"requestedAt"`
	ConfirmedAt  *time.Time `json:"confirmedAt,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type ReservationListResponse struct {
	Items      []*ReservationListItemResponse `json:"items"`
	NextCursor string                         `json:"nextCursor,omitempty"`
}

type ReservationListItemResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	PropertyID   uuid.UUID `json:"propertyId"`
	PropertyName string    `json:"propertyName"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	Status       string    `json:"status"`
	PriceCents   int64     `json:"priceCents"`
	RequestedAt  time.Time `json:"requestedAt"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:           rm.ID,
		Code:         rm.Code,
		PropertyID:   rm.PropertyID,
		PropertyName: rm.PropertyName,
		TenantID:     rm.TenantID,
		StartDate:    rm.StartDate.Format(dateLayout),
		EndDate:      rm.EndDate.Format(dateLayout),
		Nights:       int(rm.EndDate.Sub(rm.StartDate).Hours() / 24),
		Guests:       rm.Guests,
		PriceCents:   rm.PriceCents,
		Currency:     rm.Currency,
		Status:       rm.Status,
		Note:         rm.Note,
		RequestedAt:  rm.RequestedAt,
		ConfirmedAt:  rm.ConfirmedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}

func FromReservationList(items []*queries.ReservationListItem, next *queries.Cursor) *ReservationListResponse {
	resp := &ReservationListResponse{
		Items: make([]*ReservationListItemResponse, len(items)),
	}
	for i, rm := range items {
		resp.Items[i] = &ReservationListItemResponse{
			ID:           rm.ID,
			Code:         rm.Code,
			PropertyID:   rm.PropertyID,
			PropertyName: rm.PropertyName,
			StartDate:    rm.StartDate.Format(dateLayout),
			EndDate:      rm.EndDate.Format(dateLayout),
			Status:       rm.Status,
			PriceCents:   rm.PriceCents,
			RequestedAt:  rm.RequestedAt,
		}
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}
