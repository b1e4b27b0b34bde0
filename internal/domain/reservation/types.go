package reservation

// Status is the reservation lifecycle state. Transitions are linear up to
// CONFIRMED; CANCELLED is reachable from every state by a party to the
// reservation.
type Status string

const (
	StatusRequested       Status = "REQUESTED"
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusPaymentVerified Status = "PAYMENT_VERIFIED"
	StatusConfirmed       Status = "CONFIRMED"
	StatusCancelled       Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusAwaitingPayment, StatusPaymentVerified, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// CanTransitionTo reports whether the forward edge s -> next exists.
// Cancellation is allowed from any state except CANCELLED itself; a
// CONFIRMED stay may still be cancelled by either party.
func (s Status) CanTransitionTo(next Status) bool {
	if next == StatusCancelled {
		return s != StatusCancelled
	}
	switch s {
	case StatusRequested:
		return next == StatusAwaitingPayment
	case StatusAwaitingPayment:
		return next == StatusPaymentVerified
	case StatusPaymentVerified:
		return next == StatusConfirmed
	default:
		return false
	}
}

// PartyRole identifies which side of the reservation an actor is on.
type PartyRole string

const (
	RoleTenant PartyRole = "tenant"
	RoleOwner  PartyRole = "owner"
)

func (r PartyRole) String() string {
	return string(r)
}
