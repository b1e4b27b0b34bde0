package readstore

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx}
}

const paymentViewSQL = `
SELECT id, reservation_id, payer_id, amount_cents, currency, session_id,
       external_payment_id, status, refund_reason, created_at, updated_at
FROM payments`

func (r *PaymentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	row := r.db.QueryRow(ctx, paymentViewSQL+" WHERE id = $1", id)
	view, err := scanPaymentView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by ID", err)
	}
	return view, nil
}

func (r *PaymentReadStore) FindBySession(ctx context.Context, sessionID string) (*queries.PaymentView, error) {
	row := r.db.QueryRow(ctx, paymentViewSQL+" WHERE session_id = $1", sessionID)
	view, err := scanPaymentView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by session", err)
	}
	return view, nil
}

func (r *PaymentReadStore) FindByReservation(ctx context.Context, reservationID uuid.UUID) ([]*queries.PaymentView, error) {
	rows, err := r.db.Query(ctx, paymentViewSQL+`
 WHERE reservation_id = $1
 ORDER BY created_at DESC, id DESC`, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments by reservation", err)
	}
	defer rows.Close()

	var result []*queries.PaymentView
	for rows.Next() {
		view, err := scanPaymentView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read payment rows", err)
	}
	return result, nil
}

// HasSettled reports whether the reservation already carries a COMPLETED
// payment. REFUNDED payments do not count; a refunded stay may be paid again.
func (r *PaymentReadStore) HasSettled(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	var settled bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM payments WHERE reservation_id = $1 AND status = 'COMPLETED')",
		reservationID,
	).Scan(&settled)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check settled payment", err)
	}
	return settled, nil
}

func scanPaymentView(row pgx.Row) (*queries.PaymentView, error) {
	var (
		view       queries.PaymentView
		externalID pgtype.Text
		refund     pgtype.Text
	)
	err := row.Scan(
		&view.ID, &view.ReservationID, &view.PayerID, &view.AmountCents, &view.Currency,
		&view.SessionID, &externalID, &view.Status, &refund, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.ExternalPaymentID = pgconv.StringPtrFromPgtype(externalID)
	view.RefundReason = pgconv.StringPtrFromPgtype(refund)
	return &view, nil
}
