package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob    *OutboxRelayJob
	requestTimeoutJob *RequestTimeoutJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	orders ports.OrderRepository,
	timeoutHandler commands.TimeoutDeliveryRequestCommandHandler,
	requestTimeout time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob:    NewOutboxRelayJob(outbox, publisher, DefaultRelayBatchSize, logger),
		requestTimeoutJob: NewRequestTimeoutJob(orders, timeoutHandler, requestTimeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.requestTimeoutJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start request timeout job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
	jm.requestTimeoutJob.Stop()
}
