package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/infra"
	"stayhub/internal/infra/paygate"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type CheckoutResult struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	SessionID   string    `json:"session_id"`
	RedirectURL string    `json:"redirect_url"`
}

type PaymentCommands interface {
	StartCheckout(ctx context.Context, reservationID, payerID uuid.UUID) (*CheckoutResult, error)
	// HandleProviderNotification is the webhook path. It is idempotent:
	// repeats and races converge on a single completion.
	HandleProviderNotification(ctx context.Context, sessionID, externalPaymentID string) error
	// VerifyAndSync is the client polling path; it applies the same
	// completion logic and returns the payment as it now stands.
	VerifyAndSync(ctx context.Context, actorID uuid.UUID, sessionID string) (*queries.PaymentView, error)
	CancelPayment(ctx context.Context, paymentID, actorID uuid.UUID) error
	RefundPayment(ctx context.Context, paymentID, actorID uuid.UUID, reason string) error
}

type paymentCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway paygate.CheckoutGateway
	clock   clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, gateway paygate.CheckoutGateway, cl clock.Clock) PaymentCommands {
	return &paymentCommandsImpl{
		uow:     uow,
		gateway: gateway,
		clock:   cl,
	}
}

func (u *paymentCommandsImpl) StartCheckout(ctx context.Context, reservationID, payerID uuid.UUID) (*CheckoutResult, error) {
	snap, err := u.readReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if payerID != snap.TenantID {
		return nil, errs.ErrNotReservationParty
	}
	if reservation.Status(snap.Status) != reservation.StatusAwaitingPayment {
		return nil, invalidTransition(reservation.Status(snap.Status), reservation.StatusPaymentVerified)
	}

	// Opening the session never mutates provider-side state we depend
	// on, so a failed transaction below just strands an unused session.
	session, err := u.gateway.OpenSession(ctx, paygate.CheckoutRequest{
		ReservationID:   snap.ID,
		ReservationCode: snap.Code,
		PayerID:         payerID,
		AmountCents:     snap.PriceCents,
		Currency:        snap.Currency,
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrCheckoutUnavailable)
	}

	var result *CheckoutResult
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if reservation.Status(current.Status) != reservation.StatusAwaitingPayment {
			return invalidTransition(reservation.Status(current.Status), reservation.StatusPaymentVerified)
		}

		settled, err := tx.Reads().HasSettledPayment(ctx, reservationID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if settled {
			return errs.ErrAlreadyPaid
		}

		entity, err := payment.NewPendingPayment(reservationID, payerID, session.SessionID, snap.PriceCents, snap.Currency, u.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		paymentID, err := tx.Payments().Create(ctx, tx.DB(), entity)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = &CheckoutResult{
			PaymentID:   paymentID,
			SessionID:   session.SessionID,
			RedirectURL: session.RedirectURL,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (u *paymentCommandsImpl) HandleProviderNotification(ctx context.Context, sessionID, externalPaymentID string) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return u.completeBySession(ctx, tx, sessionID, externalPaymentID)
	})
}

func (u *paymentCommandsImpl) VerifyAndSync(ctx context.Context, actorID uuid.UUID, sessionID string) (*queries.PaymentView, error) {
	var snap *shared.PaymentSnapshot
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := u.completeBySession(ctx, tx, sessionID, ""); err != nil {
			return err
		}
		current, err := tx.Reads().PaymentBySession(ctx, sessionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrPaymentSessionUnknown)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		res, err := tx.Reads().ReservationByID(ctx, current.ReservationID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if actorID != current.PayerID && actorID != res.OwnerID {
			return errs.ErrPaymentNotFound
		}
		snap = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paymentViewFromSnapshot(snap), nil
}

// completeBySession runs the PENDING -> COMPLETED compare-and-set and, for
// the winner, drives the reservation to PAYMENT_VERIFIED.
func (u *paymentCommandsImpl) completeBySession(ctx context.Context, tx shared.Tx, sessionID, externalPaymentID string) error {
	now := u.clock.Now()

	completion, err := tx.Payments().CompleteBySession(ctx, tx.DB(), sessionID, externalPaymentID, now)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrPaymentSessionUnknown)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if completion == nil {
		// Lost the CAS or already settled earlier; nothing left to do.
		return nil
	}

	rows, err := tx.Reservations().UpdateStatus(ctx, tx.DB(), shared.StatusUpdate{
		ID:   completion.ReservationID,
		From: reservation.StatusAwaitingPayment,
		To:   reservation.StatusPaymentVerified,
		Now:  now,
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if rows == 0 {
		// Reservation left AWAITING_PAYMENT while the payer was on the
		// provider's page. The payment stays COMPLETED; refunding is an
		// explicit owner action.
		slog.Error("payment completed for reservation no longer awaiting payment",
			"reservation_id", completion.ReservationID,
			"payment_id", completion.PaymentID,
			"session_id", sessionID)
	}

	payload := map[string]any{
		"reservation_id": completion.ReservationID,
		"payment_id":     completion.PaymentID,
		"session_id":     sessionID,
	}
	if err := enqueuePaymentEvent(ctx, tx, "payment.completed", payload, now); err != nil {
		return err
	}
	return nil
}

func (u *paymentCommandsImpl) CancelPayment(ctx context.Context, paymentID, actorID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := u.readPayment(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if actorID != snap.PayerID {
			return errs.ErrNotPayer
		}
		if payment.Status(snap.Status) != payment.StatusPending {
			return errs.ErrPaymentNotPending
		}

		rows, err := tx.Payments().CancelPending(ctx, tx.DB(), paymentID, actorID, u.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if rows == 0 {
			return errs.ErrPaymentNotPending
		}
		return nil
	})
}

func (u *paymentCommandsImpl) RefundPayment(ctx context.Context, paymentID, actorID uuid.UUID, reason string) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := u.readPayment(ctx, tx, paymentID)
		if err != nil {
			return err
		}

		res, err := tx.Reads().ReservationByID(ctx, snap.ReservationID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if actorID != res.OwnerID {
			return errs.ErrNotReservationParty
		}
		if payment.Status(snap.Status) != payment.StatusCompleted {
			return errs.ErrPaymentNotCompleted
		}

		now := u.clock.Now()
		rows, err := tx.Payments().Refund(ctx, tx.DB(), paymentID, reason, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if rows == 0 {
			return errs.ErrPaymentNotCompleted
		}

		return enqueuePaymentEvent(ctx, tx, "payment.refunded", map[string]any{
			"reservation_id": snap.ReservationID,
			"payment_id":     paymentID,
			"reason":         reason,
		}, now)
	})
}

func (u *paymentCommandsImpl) readReservation(ctx context.Context, reservationID uuid.UUID) (*shared.ReservationSnapshot, error) {
	snap, err := u.uow.CommandReads().ReservationByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snap, nil
}

func (u *paymentCommandsImpl) readPayment(ctx context.Context, tx shared.Tx, paymentID uuid.UUID) (*shared.PaymentSnapshot, error) {
	snap, err := tx.Reads().PaymentByID(ctx, paymentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrPaymentNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snap, nil
}

func enqueuePaymentEvent(ctx context.Context, tx shared.Tx, topic string, payload map[string]any, now time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, body, now); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func paymentViewFromSnapshot(snap *shared.PaymentSnapshot) *queries.PaymentView {
	return &queries.PaymentView{
		ID:                snap.ID,
		ReservationID:     snap.ReservationID,
		PayerID:           snap.PayerID,
		AmountCents:       snap.AmountCents,
		Currency:          snap.Currency,
		SessionID:         snap.SessionID,
		ExternalPaymentID: snap.ExternalPaymentID,
		Status:            snap.Status,
		RefundReason:      snap.RefundReason,
		CreatedAt:         snap.CreatedAt,
		UpdatedAt:         snap.UpdatedAt,
	}
}
