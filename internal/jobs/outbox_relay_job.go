package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultRelayBatchSize caps how many outbox messages one relay tick publishes.
const DefaultRelayBatchSize = 100

// OutboxRelayJob publishes captured domain events from the outbox table to the
// message broker. Runs every second; messages are published oldest first and
// marked published only after the broker confirms them, so a crash between
// publish and mark can at worst deliver a message twice, never drop it.
type OutboxRelayJob struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay job.
func NewOutboxRelayJob(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	batchSize int,
	logger *slog.Logger,
) *OutboxRelayJob {
	if batchSize <= 0 {
		batchSize = DefaultRelayBatchSize
	}
	return &OutboxRelayJob{
		outbox:    outbox,
		publisher: publisher,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start begins relaying outbox messages every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.relayBatch(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay tick failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) relayBatch(ctx context.Context) error {
	messages, err := j.outbox.GetUnpublished(ctx, j.batchSize)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}

	published := make([]kernel.UUID, 0, len(messages))
	var publishErr error
	for _, message := range messages {
		if publishErr = j.publisher.Publish(ctx, message.RoutingKey, message.Payload); publishErr != nil {
			// Keep ordering per routing key: stop the batch and mark only
			// what the broker confirmed.
			break
		}
		published = append(published, message.ID)
	}

	if len(published) > 0 {
		if err := j.outbox.MarkPublished(ctx, published); err != nil {
			return err
		}
	}

	return publishErr
}
