package payment

// Status is the payment lifecycle state. PENDING settles to COMPLETED or
// CANCELLED; only a COMPLETED payment can be REFUNDED.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

func (s Status) IsSettledPaid() bool {
	return s == StatusCompleted
}

func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusCompleted || next == StatusCancelled
	case StatusCompleted:
		return next == StatusRefunded
	default:
		return false
	}
}
