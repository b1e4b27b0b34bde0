package notify

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxDeliveryAttempts = 5

// Dispatcher drains the notification_jobs outbox on an interval and
// hands each job to the broker. Claiming uses FOR UPDATE SKIP LOCKED so
// several dispatchers can run without double delivery.
type Dispatcher struct {
	pool      *pgxpool.Pool
	publisher *Publisher
	clock     clock.Clock
	interval  time.Duration
	batchSize int

	stop chan struct{}
	done chan struct{}
}

func NewDispatcher(pool *pgxpool.Pool, publisher *Publisher, cl clock.Clock, cfg config.AMQPConfig) *Dispatcher {
	return &Dispatcher{
		pool:      pool,
		publisher: publisher,
		clock:     cl,
		interval:  cfg.DispatchInterval,
		batchSize: cfg.DispatchBatch,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (d *Dispatcher) Start() {
	go d.loop()
}

func (d *Dispatcher) Stop() {
	close(d.stop)
	<-d.done
}

func (d *Dispatcher) loop() {
	defer close(d.done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), d.interval)
			if err := d.DispatchDue(ctx); err != nil {
				slog.Error("notification dispatch cycle failed", "error", err.Error())
			}
			cancel()
		}
	}
}

type outboxJob struct {
	ID       pgtype.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int
}

const claimJobsSQL = `
SELECT id, kind, topic, payload, attempts
FROM notification_jobs
WHERE status = 'pending' AND run_at <= $1
ORDER BY run_at
LIMIT $2
FOR UPDATE SKIP LOCKED`

const markSentSQL = `
UPDATE notification_jobs
SET status = 'sent', attempts = attempts + 1, updated_at = $2
WHERE id = $1`

const markRetrySQL = `
UPDATE notification_jobs
SET attempts = attempts + 1, last_error = $2, run_at = $3, updated_at = $4
WHERE id = $1`

const markFailedSQL = `
UPDATE notification_jobs
SET status = 'failed', attempts = attempts + 1, last_error = $2, updated_at = $3
WHERE id = $1`

// DispatchDue claims one batch of due jobs and publishes them. Each
// batch runs in a single transaction; the claim lock is held until the
// publish results are recorded.
func (d *Dispatcher) DispatchDue(ctx context.Context) error {
	now := d.clock.Now()

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin outbox transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, claimJobsSQL, now, d.batchSize)
	if err != nil {
		return infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	var jobs []outboxJob
	for rows.Next() {
		var job outboxJob
		if err := rows.Scan(&job.ID, &job.Kind, &job.Topic, &job.Payload, &job.Attempts); err != nil {
			rows.Close()
			return infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, job)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read notification jobs", err)
	}

	for _, job := range jobs {
		pubErr := d.publisher.Publish(job.Topic, job.Payload)
		if pubErr == nil {
			if _, err := tx.Exec(ctx, markSentSQL, job.ID, now); err != nil {
				return infra.WrapRepoErr("failed to mark notification sent", err)
			}
			continue
		}

		slog.Warn("notification publish failed",
			"kind", job.Kind,
			"topic", job.Topic,
			"attempts", job.Attempts+1,
			"error", pubErr.Error())

		if job.Attempts+1 >= maxDeliveryAttempts {
			if _, err := tx.Exec(ctx, markFailedSQL, job.ID, pubErr.Error(), now); err != nil {
				return infra.WrapRepoErr("failed to mark notification failed", err)
			}
			continue
		}

		retryAt := now.Add(backoffFor(job.Attempts + 1))
		if _, err := tx.Exec(ctx, markRetrySQL, job.ID, pubErr.Error(), retryAt, now); err != nil {
			return infra.WrapRepoErr("failed to reschedule notification", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit outbox transaction", err)
	}
	return nil
}

func backoffFor(attempts int) time.Duration {
	return time.Duration(1<<attempts) * 30 * time.Second
}
