//go:build unit

package commands_test

import (
	"context"
	"time"

	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/infra/db"
	"stayhub/internal/infra/paygate"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory fakes for the write side. Function fields default to a
// failing nil call, so each test wires exactly what it expects to be hit.

type fakeUoW struct {
	tx fakeTx
}

func (f *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &f.tx)
}

func (f *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (f *fakeUoW) CommandReads() shared.CommandReads {
	return &f.tx.reads
}

type fakeTx struct {
	reservations  fakeReservationRepo
	payments      fakePaymentRepo
	notifications fakeNotificationRepo
	reads         fakeCommandReads
}

func (t *fakeTx) Reservations() shared.ReservationRepository   { return &t.reservations }
func (t *fakeTx) Payments() shared.PaymentRepository           { return &t.payments }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &t.notifications }
func (t *fakeTx) Reads() shared.CommandReads                   { return &t.reads }
func (t *fakeTx) DB() db.DBTX                                  { return nil }

type fakeCommandReads struct {
	propertyByID      func(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error)
	reservationByID   func(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error)
	paymentByID       func(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error)
	paymentBySession  func(ctx context.Context, sessionID string) (*shared.PaymentSnapshot, error)
	hasSettledPayment func(ctx context.Context, reservationID uuid.UUID) (bool, error)
	isAvailable       func(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error)
}

func (r *fakeCommandReads) PropertyByID(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	return r.propertyByID(ctx, id)
}

func (r *fakeCommandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	return r.reservationByID(ctx, id)
}

func (r *fakeCommandReads) PaymentByID(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	return r.paymentByID(ctx, id)
}

func (r *fakeCommandReads) PaymentBySession(ctx context.Context, sessionID string) (*shared.PaymentSnapshot, error) {
	return r.paymentBySession(ctx, sessionID)
}

func (r *fakeCommandReads) HasSettledPayment(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	return r.hasSettledPayment(ctx, reservationID)
}

func (r *fakeCommandReads) IsAvailable(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error) {
	return r.isAvailable(ctx, propertyID, start, end)
}

type fakeReservationRepo struct {
	create       func(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	updateStatus func(ctx context.Context, upd shared.StatusUpdate) (int64, error)

	statusUpdates []shared.StatusUpdate
}

func (r *fakeReservationRepo) Create(ctx context.Context, _ db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	return r.create(ctx, res)
}

func (r *fakeReservationRepo) UpdateStatus(ctx context.Context, _ db.DBTX, upd shared.StatusUpdate) (int64, error) {
	r.statusUpdates = append(r.statusUpdates, upd)
	return r.updateStatus(ctx, upd)
}

type fakePaymentRepo struct {
	create            func(ctx context.Context, p *payment.Payment) (uuid.UUID, error)
	completeBySession func(ctx context.Context, sessionID, externalPaymentID string, now time.Time) (*shared.PaymentCompletion, error)
	cancelPending     func(ctx context.Context, paymentID, payerID uuid.UUID, now time.Time) (int64, error)
	refund            func(ctx context.Context, paymentID uuid.UUID, reason string, now time.Time) (int64, error)
}

func (r *fakePaymentRepo) Create(ctx context.Context, _ db.DBTX, p *payment.Payment) (uuid.UUID, error) {
	return r.create(ctx, p)
}

func (r *fakePaymentRepo) CompleteBySession(ctx context.Context, _ db.DBTX, sessionID, externalPaymentID string, now time.Time) (*shared.PaymentCompletion, error) {
	return r.completeBySession(ctx, sessionID, externalPaymentID, now)
}

func (r *fakePaymentRepo) CancelPending(ctx context.Context, _ db.DBTX, paymentID, payerID uuid.UUID, now time.Time) (int64, error) {
	return r.cancelPending(ctx, paymentID, payerID, now)
}

func (r *fakePaymentRepo) Refund(ctx context.Context, _ db.DBTX, paymentID uuid.UUID, reason string, now time.Time) (int64, error) {
	return r.refund(ctx, paymentID, reason, now)
}

type enqueuedJob struct {
	kind    string
	topic   string
	payload []byte
}

type fakeNotificationRepo struct {
	jobs []enqueuedJob
	err  error
}

func (r *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, _ time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.jobs = append(r.jobs, enqueuedJob{kind: kind, topic: topic, payload: payload})
	return nil
}

type fakeGateway struct {
	openSession func(ctx context.Context, req paygate.CheckoutRequest) (*paygate.CheckoutSession, error)
}

func (g *fakeGateway) OpenSession(ctx context.Context, req paygate.CheckoutRequest) (*paygate.CheckoutSession, error) {
	return g.openSession(ctx, req)
}
