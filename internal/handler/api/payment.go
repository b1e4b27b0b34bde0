package api

import (
	"errors"
	"log/slog"
	"net/http"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
	paymentQueries  queries.PaymentQueries
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands, paymentQueries queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
		paymentQueries:  paymentQueries,
	}
}

// @Summary Start checkout
// @Description Open a hosted checkout session for an approved reservation
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /reservations/{id}/checkout [post]
func (h *PaymentHandler) StartCheckout(c *gin.Context) {
	payerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "unauthorized", "Unauthorized", nil)
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid reservation ID format", nil)
		return
	}

	result, err := h.paymentCommands.StartCheckout(c.Request.Context(), reservationID, payerID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CheckoutResponse{
		PaymentID:   result.PaymentID,
		SessionID:   result.SessionID,
		RedirectURL: result.RedirectURL,
	})
}

// @Summary Payment provider webhook
// @Description Receives checkout completion callbacks; always acks 200
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.ProviderNotificationRequest true "Provider notification"
// @Success 200 {object} map[string]string
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	// The provider retries on anything but 200, so every outcome acks.
	// Failures are logged for reconciliation instead of surfaced.
	var req reqdto.ProviderNotificationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		slog.Warn("malformed provider notification", "error", bindErr.Error())
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := h.paymentCommands.HandleProviderNotification(c.Request.Context(), req.SessionID, req.ExternalPaymentID); err != nil {
		slog.Error("provider notification handling failed",
			"session_id", req.SessionID,
			"event_type", req.EventType,
			"error", err.Error())
		c.JSON(http.StatusOK, gin.H{"status": "error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Verify payment
// @Description Polling counterpart to the webhook; applies the same completion and returns the payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param session_id query string true "Checkout session ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 404 {object} httperr.Response
// @Router /payments/verify [get]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "unauthorized", "Unauthorized", nil)
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("missing session_id"), "invalid_request", "session_id is required", nil)
		return
	}

	view, err := h.paymentCommands.VerifyAndSync(c.Request.Context(), actorID, sessionID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary Get payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 404 {object} httperr.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "unauthorized", "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid payment ID format", nil)
		return
	}

	view, err := h.paymentQueries.GetByID(c.Request.Context(), actorID, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary List payments for a reservation
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {array} resdto.PaymentResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/payments [get]
func (h *PaymentHandler) ListReservationPayments(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "unauthorized", "Unauthorized", nil)
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid reservation ID format", nil)
		return
	}

	views, err := h.paymentQueries.ListByReservation(c.Request.Context(), actorID, reservationID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentViews(views))
}

// @Summary Cancel payment
// @Description Payer abandons a pending checkout
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/{id}/cancel [post]
func (h *PaymentHandler) CancelPayment(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "unauthorized", "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid payment ID format", nil)
		return
	}

	if err := h.paymentCommands.CancelPayment(c.Request.Context(), id, actorID); err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Refund payment
// @Description Property owner reverses a completed payment with a reason
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body reqdto.RefundPaymentRequest true "Refund reason"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/{id}/refund [post]
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "unauthorized", "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_id", "Invalid payment ID format", nil)
		return
	}

	var req reqdto.RefundPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "invalid_request", "Invalid request format", nil)
		return
	}

	if err := h.paymentCommands.RefundPayment(c.Request.Context(), id, actorID, req.Reason); err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
