package shared

import (
	"context"
	"time"

	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Payments() PaymentRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the write-side lookups commands need before mutating.
// Every call re-reads current state; nothing is cached between calls.
type CommandReads interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	PaymentByID(ctx context.Context, id uuid.UUID) (*PaymentSnapshot, error)
	PaymentBySession(ctx context.Context, sessionID string) (*PaymentSnapshot, error)
	HasSettledPayment(ctx context.Context, reservationID uuid.UUID) (bool, error)
	IsAvailable(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error)
}

// StatusUpdate is a compare-and-set on a reservation's status. When
// FromAnyActive is set the update matches any state except CANCELLED
// (cancellation by a party); otherwise From must match exactly.
type StatusUpdate struct {
	ID             uuid.UUID
	From           reservation.Status
	FromAnyActive  bool
	To             reservation.Status
	AppendNote     string
	SetConfirmedAt bool
	Now            time.Time
}

type ReservationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	// UpdateStatus returns the number of rows matched; zero means the
	// compare-and-set lost and the caller re-reads to report the current
	// state.
	UpdateStatus(ctx context.Context, dbtx db.DBTX, upd StatusUpdate) (int64, error)
}

type PaymentCompletion struct {
	PaymentID     uuid.UUID
	ReservationID uuid.UUID
}

type PaymentRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, p *payment.Payment) (uuid.UUID, error)
	// CompleteBySession performs the PENDING -> COMPLETED compare-and-set
	// keyed by checkout session. It returns (nil, nil) when the payment
	// exists but was no longer pending -- the idempotent no-op path.
	CompleteBySession(ctx context.Context, dbtx db.DBTX, sessionID, externalPaymentID string, now time.Time) (*PaymentCompletion, error)
	// CancelPending is a CAS guarded on both status and payer.
	CancelPending(ctx context.Context, dbtx db.DBTX, paymentID, payerID uuid.UUID, now time.Time) (int64, error)
	// Refund is a CAS COMPLETED -> REFUNDED recording the reason.
	Refund(ctx context.Context, dbtx db.DBTX, paymentID uuid.UUID, reason string, now time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
