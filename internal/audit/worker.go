package audit

import (
	"context"
	"log/slog"
	"time"
)

// OutboxRow is an undelivered audit event awaiting publication.
type OutboxRow struct {
	EventID    string
	CustomerID string
	Payload    []byte
}

// Outbox is the slice of the postgres store the worker drains.
type Outbox interface {
	NextUnpublished(ctx context.Context, limit int) ([]OutboxRow, error)
	MarkPublished(ctx context.Context, eventIDs []string) error
}

// Sink receives drained outbox payloads (Kafka in production).
type Sink interface {
	Publish(ctx context.Context, customerID string, payload []byte) error
}

// Worker drains the audit outbox to the sink. Delivery is at-least-once:
// rows are marked published only after the sink accepts them, so a crash
// between publish and mark replays the batch.
type Worker struct {
	outbox    Outbox
	sink      Sink
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// NewWorker constructs an outbox drainer.
func NewWorker(outbox Outbox, sink Sink, logger *slog.Logger) *Worker {
	return &Worker{
		outbox:    outbox,
		sink:      sink,
		logger:    logger,
		interval:  5 * time.Second,
		batchSize: 100,
	}
}

// Run drains batches until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.drainOnce(ctx); err != nil {
				w.logger.ErrorContext(ctx, "audit outbox drain failed", "error", err)
			}
		}
	}
}

func (w *Worker) drainOnce(ctx context.Context) error {
	rows, err := w.outbox.NextUnpublished(ctx, w.batchSize)
	if err != nil {
		return err
	}
	var published []string
	for _, row := range rows {
		if err := w.sink.Publish(ctx, row.CustomerID, row.Payload); err != nil {
			// Stop at the first failure to preserve per-customer ordering.
			w.logger.WarnContext(ctx, "audit publish failed, will retry",
				"event_id", row.EventID,
				"error", err,
			)
			break
		}
		published = append(published, row.EventID)
	}
	return w.outbox.MarkPublished(ctx, published)
}
