package request

import (
	"strings"
	"time"

	"stayhub/internal/domain/reservation"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateReservationRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	StartDate  string    `json:"start_date" binding:"required"`
	EndDate    string    `json:"end_date" binding:"required"`
	Guests     int       `json:"guests" binding:"required,min=1"`
	Note       *string   `json:"note,omitempty"`
}

// StayDates parses the wire dates. Dates are calendar days; the period is
// half-open [start, end).
func (r CreateReservationRequest) StayDates() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (r CreateReservationRequest) GetNote() reservation.Note {
	if r.Note == nil {
		return reservation.NewNote("")
	}
	return reservation.NewNote(strings.TrimSpace(*r.Note))
}

type RejectReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}
