package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(reservationCommands commands.ReservationCommands, reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Request reservation
// @Description Request a stay on a property; price is quoted and frozen now
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	tenantID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "unauthorized", "Unauthorized", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "invalid_request", "Invalid request format", nil)
		return
	}

	view, err := h.reservationCommands.Request(c.Request.Context(), req, tenantID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Description Get reservation by ID; visible to its tenant and the property owner
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "unauthorized", "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid reservation ID format", nil)
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), actorID, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List own reservations
// @Description List the caller's reservations, newest first, keyset paginated
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param after query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	tenantID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "unauthorized", "Unauthorized", nil)
		return
	}

	cursor, limit, err := pageParams(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_cursor", "Invalid pagination parameters", nil)
		return
	}

	items, next, err := h.reservationQueries.ListByTenant(c.Request.Context(), tenantID, cursor, limit)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationList(items, next))
}

// @Summary Approve reservation
// @Description Owner accepts a pending request; the tenant may now pay
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/approve [post]
func (h *ReservationHandler) ApproveReservation(c *gin.Context) {
	h.applyTransition(c, func(ctx *gin.Context, id, actorID uuid.UUID) error {
		return h.reservationCommands.Approve(ctx.Request.Context(), id, actorID)
	})
}

// @Summary Reject reservation
// @Description Owner declines a pending request with a reason
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RejectReservationRequest true "Rejection reason"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/reject [post]
func (h *ReservationHandler) RejectReservation(c *gin.Context) {
	var req reqdto.RejectReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "invalid_request", "Invalid request format", nil)
		return
	}
	h.applyTransition(c, func(ctx *gin.Context, id, actorID uuid.UUID) error {
		return h.reservationCommands.Reject(ctx.Request.Context(), id, actorID, req.Reason)
	})
}

// @Summary Confirm reservation
// @Description Owner finalizes a paid stay
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/confirm [post]
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	h.applyTransition(c, func(ctx *gin.Context, id, actorID uuid.UUID) error {
		return h.reservationCommands.Confirm(ctx.Request.Context(), id, actorID)
	})
}

// @Summary Cancel reservation
// @Description Either party cancels, from any state, with a reason
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest true "Cancellation reason"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	var req reqdto.CancelReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "invalid_request", "Invalid request format", nil)
		return
	}
	h.applyTransition(c, func(ctx *gin.Context, id, actorID uuid.UUID) error {
		return h.reservationCommands.Cancel(ctx.Request.Context(), id, actorID, req.Reason)
	})
}

func (h *ReservationHandler) applyTransition(c *gin.Context, fn func(*gin.Context, uuid.UUID, uuid.UUID) error) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "unauthorized", "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid reservation ID format", nil)
		return
	}

	if err := fn(c, id, actorID); err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func pageParams(c *gin.Context) (*queries.Cursor, int, error) {
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, 0, err
		}
		limit = parsed
	}
	return cursor, limit, nil
}
