package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/payment"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

const createPaymentSQL = `
INSERT INTO payments (
	id, reservation_id, payer_id, amount_cents, currency,
	session_id, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING id`

func (r *PaymentRepository) Create(ctx context.Context, dbtx db.DBTX, p *payment.Payment) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createPaymentSQL,
		p.ID(),
		p.ReservationID(),
		p.PayerID(),
		p.AmountCents(),
		p.Currency(),
		p.SessionID(),
		p.Status().String(),
		p.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create payment", err)
	}
	return id, nil
}

const completeBySessionSQL = `
UPDATE payments SET
	status = 'COMPLETED',
	external_payment_id = NULLIF($2, ''),
	updated_at = $3
WHERE session_id = $1 AND status = 'PENDING'
RETURNING id, reservation_id`

const backfillExternalIDSQL = `
UPDATE payments SET external_payment_id = $2, updated_at = $3
WHERE session_id = $1 AND status = 'COMPLETED' AND external_payment_id IS NULL`

const sessionExistsSQL = `
SELECT EXISTS (SELECT 1 FROM payments WHERE session_id = $1)`

// CompleteBySession is the single gate for payment completion. The status
// predicate makes concurrent webhook delivery and client polling converge:
// exactly one caller gets a row back and drives the reservation forward.
// The polling path completes without a provider payment id; a later
// webhook for the already-completed payment fills it in.
func (r *PaymentRepository) CompleteBySession(ctx context.Context, dbtx db.DBTX, sessionID, externalPaymentID string, now time.Time) (*shared.PaymentCompletion, error) {
	var completion shared.PaymentCompletion
	err := dbtx.QueryRow(ctx, completeBySessionSQL, sessionID, externalPaymentID, now).
		Scan(&completion.PaymentID, &completion.ReservationID)
	if err == nil {
		return &completion, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to complete payment", err)
	}

	var exists bool
	if err := dbtx.QueryRow(ctx, sessionExistsSQL, sessionID).Scan(&exists); err != nil {
		return nil, infra.WrapRepoErr("failed to look up payment session", err)
	}
	if !exists {
		return nil, infra.WrapRepoErr("payment session not found", nil, infra.KindNotFound)
	}

	if externalPaymentID != "" {
		if _, err := dbtx.Exec(ctx, backfillExternalIDSQL, sessionID, externalPaymentID, now); err != nil {
			return nil, infra.WrapRepoErr("failed to record external payment id", err)
		}
	}

	// Lost the CAS: the payment was already settled or cancelled.
	return nil, nil
}

const cancelPendingSQL = `
UPDATE payments SET status = 'CANCELLED', updated_at = $3
WHERE id = $1 AND payer_id = $2 AND status = 'PENDING'`

func (r *PaymentRepository) CancelPending(ctx context.Context, dbtx db.DBTX, paymentID, payerID uuid.UUID, now time.Time) (int64, error) {
	tag, err := dbtx.Exec(ctx, cancelPendingSQL, paymentID, payerID, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel payment", err)
	}
	return tag.RowsAffected(), nil
}

const refundSQL = `
UPDATE payments SET status = 'REFUNDED', refund_reason = $2, updated_at = $3
WHERE id = $1 AND status = 'COMPLETED'`

func (r *PaymentRepository) Refund(ctx context.Context, dbtx db.DBTX, paymentID uuid.UUID, reason string, now time.Time) (int64, error) {
	tag, err := dbtx.Exec(ctx, refundSQL, paymentID, reason, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to refund payment", err)
	}
	return tag.RowsAffected(), nil
}
