package api

import (
	"errors"
	"net/http"

	"stayhub/internal/handler/httperr"
	"stayhub/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortWithDomainError maps usecase sentinels onto the wire taxonomy.
// Party checks deliberately surface as 404 so outsiders cannot probe for
// the existence of other people's reservations.
func abortWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidStayPeriod):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_stay_period", "Stay must start in the future and end after it starts", nil)
	case errors.Is(err, errs.ErrGuestsExceedLimit):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "guests_exceed_limit", "Guest count exceeds the property capacity", nil)
	case errors.Is(err, errs.ErrOwnPropertyBooking):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "own_property", "Owners cannot reserve their own property", nil)
	case errors.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "invalid_transition", "This action is no longer possible in the reservation's current state", nil)
	case errors.Is(err, errs.ErrDatesUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "dates_unavailable", "The requested dates are no longer available", nil)
	case errors.Is(err, errs.ErrAlreadyPaid):
		httperr.AbortWithError(c, http.StatusConflict, err, "already_paid", "The reservation already has a settled payment", nil)
	case errors.Is(err, errs.ErrPaymentNotPending):
		httperr.AbortWithError(c, http.StatusConflict, err, "payment_not_pending", "The payment is no longer pending", nil)
	case errors.Is(err, errs.ErrPaymentNotCompleted):
		httperr.AbortWithError(c, http.StatusConflict, err, "payment_not_completed", "Only completed payments can be refunded", nil)
	case errors.Is(err, errs.ErrPropertyNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "property_not_found", "Property not found", nil)
	case errors.Is(err, errs.ErrReservationNotFound),
		errors.Is(err, errs.ErrNotReservationParty):
		httperr.AbortWithError(c, http.StatusNotFound, err, "reservation_not_found", "Reservation not found", nil)
	case errors.Is(err, errs.ErrPaymentNotFound),
		errors.Is(err, errs.ErrPaymentSessionUnknown),
		errors.Is(err, errs.ErrNotPayer):
		httperr.AbortWithError(c, http.StatusNotFound, err, "payment_not_found", "Payment not found", nil)
	case errors.Is(err, errs.ErrCheckoutUnavailable):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "checkout_unavailable", "Checkout provider is unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "internal_error", "Internal server error", nil)
	}
}
