package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// RequestTimeoutJob sweeps for delivery requests that outlived the request
// timeout without an in-process timer firing, which happens when the service
// restarts with requests in flight. Runs every ten seconds; the in-process
// timers remain the fast path.
type RequestTimeoutJob struct {
	orders         ports.OrderRepository
	timeoutHandler commands.TimeoutDeliveryRequestCommandHandler
	requestTimeout time.Duration
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewRequestTimeoutJob creates the sweep job.
func NewRequestTimeoutJob(
	orders ports.OrderRepository,
	timeoutHandler commands.TimeoutDeliveryRequestCommandHandler,
	requestTimeout time.Duration,
	logger *slog.Logger,
) *RequestTimeoutJob {
	return &RequestTimeoutJob{
		orders:         orders,
		timeoutHandler: timeoutHandler,
		requestTimeout: requestTimeout,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "request_timeout_job"),
	}
}

// Start begins sweeping for stale requests every ten seconds.
func (j *RequestTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		if err := j.sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Request timeout sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Request timeout job started (running every ten seconds)")
	return nil
}

// Stop stops the sweep job.
func (j *RequestTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Request timeout job stopped")
}

func (j *RequestTimeoutJob) sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-j.requestTimeout)
	stale, err := j.orders.GetWithStaleRequests(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, staleOrder := range stale {
		request := staleOrder.Delivery().OpenRequest()
		if request == nil {
			continue
		}

		cmd, err := commands.NewTimeoutDeliveryRequestCommand(staleOrder.ID(), request.CourierID())
		if err != nil {
			return err
		}

		if err := j.timeoutHandler.Handle(ctx, cmd); err != nil {
			// A courier answering between the query and the timeout is not a
			// sweep failure.
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			j.logger.ErrorContext(ctx, "Failed to expire stale delivery request",
				"order_id", staleOrder.ID().String(),
				"courier_id", request.CourierID().String(),
				"error", err)
		}
	}

	return nil
}
