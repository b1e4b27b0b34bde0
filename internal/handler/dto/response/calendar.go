package response

import (
	"time"

	"github.com/google/uuid"
)

type OccupiedDatesResponse struct {
	PropertyID uuid.UUID `json:"propertyId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Dates      []string  `json:"dates"`
}

func FromOccupiedDates(propertyID uuid.UUID, from, to time.Time, dates []time.Time) *OccupiedDatesResponse {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(dateLayout)
	}
	return &OccupiedDatesResponse{
		PropertyID: propertyID,
		From:       from.Format(dateLayout),
		To:         to.Format(dateLayout),
		Dates:      out,
	}
}
