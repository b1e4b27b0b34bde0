package api

import (
	"errors"
	"net/http"
	"time"

	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CalendarHandler struct {
	calendarQueries    queries.CalendarQueries
	reservationQueries queries.ReservationQueries
}

func NewCalendarHandler(calendarQueries queries.CalendarQueries, reservationQueries queries.ReservationQueries) *CalendarHandler {
	return &CalendarHandler{
		calendarQueries:    calendarQueries,
		reservationQueries: reservationQueries,
	}
}

// @Summary Occupied dates
// @Description Public availability calendar: every occupied day in [from,to)
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Param from query string true "Window start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Window end (YYYY-MM-DD, exclusive)"
// @Success 200 {object} resdto.OccupiedDatesResponse
// @Failure 400 {object} httperr.Response
// @Router /properties/{id}/occupied-dates [get]
func (h *CalendarHandler) OccupiedDates(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid property ID format", nil)
		return
	}

	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_range", "from must be YYYY-MM-DD", nil)
		return
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_range", "to must be YYYY-MM-DD", nil)
		return
	}

	dates, err := h.calendarQueries.OccupiedDates(c.Request.Context(), propertyID, from, to)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOccupiedDates(propertyID, from, to, dates))
}

// @Summary List property reservations
// @Description Owner-only listing of a property's reservations
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param after query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /properties/{id}/reservations [get]
func (h *CalendarHandler) ListPropertyReservations(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "unauthorized", "Unauthorized", nil)
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid property ID format", nil)
		return
	}

	cursor, limit, err := pageParams(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_cursor", "Invalid pagination parameters", nil)
		return
	}

	items, next, err := h.reservationQueries.ListByProperty(c.Request.Context(), actorID, propertyID, cursor, limit)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationList(items, next))
}
