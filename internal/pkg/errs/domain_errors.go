package errs

import "errors"

// Sentinel errors shared across usecase layers. Handlers map these to
// stable machine-readable codes; infra causes are attached via Mark.
var (
	// Property errors
	ErrPropertyNotFound = errors.New("property not found")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrDatesUnavailable    = errors.New("requested dates are not available")
	ErrOwnPropertyBooking  = errors.New("owners cannot reserve their own property")
	ErrInvalidStayPeriod   = errors.New("invalid stay period")
	ErrGuestsExceedLimit   = errors.New("guest count exceeds property capacity")
	ErrInvalidTransition   = errors.New("reservation state does not allow this action")
	ErrNotReservationParty = errors.New("actor is not a party to this reservation")

	// Payment errors
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentSessionUnknown = errors.New("unknown payment session")
	ErrAlreadyPaid           = errors.New("reservation already has a settled payment")
	ErrPaymentNotPending     = errors.New("payment is not pending")
	ErrPaymentNotCompleted   = errors.New("payment is not completed")
	ErrNotPayer              = errors.New("actor is not the payer of this payment")
	ErrCheckoutUnavailable   = errors.New("checkout provider unavailable")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
