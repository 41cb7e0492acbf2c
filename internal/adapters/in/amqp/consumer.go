// Package amqp consumes domain events from the broker and turns them into
// commands. Dispatch is event driven: a paid order starts the courier search,
// and a rejected or expired request triggers the next attempt.
package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue names owned by the dispatch consumer.
const (
	orderPaidQueue       = "dispatch.order.paid"
	requestResolvedQueue = "dispatch.delivery_request.resolved"
)

// orderEvent is the envelope shared by every event the consumer reacts to.
// Only the order id matters here; the dispatch handler reloads the aggregate
// and decides what, if anything, to do.
type orderEvent struct {
	OrderID uuid.UUID `json:"orderId"`
}

// Consumer binds queues to the events exchange and feeds dispatch attempts.
type Consumer struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	dispatch commands.DispatchOrderCommandHandler
	logger   *slog.Logger
}

// NewConsumer connects to the broker and declares the queues and bindings the
// consumer needs. The exchange is declared identically to the publisher side,
// so either side may start first.
func NewConsumer(
	url string,
	dispatch commands.DispatchOrderCommandHandler,
	logger *slog.Logger,
) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	c := &Consumer{
		conn:     conn,
		ch:       ch,
		dispatch: dispatch,
		logger:   logger.With("component", "amqp_consumer"),
	}

	if err := c.declareTopology(); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

func (c *Consumer) declareTopology() error {
	if err := c.ch.ExchangeDeclare(
		rabbitmq.ExchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	bindings := map[string][]string{
		orderPaidQueue: {order.QueueOrderPaid},
		requestResolvedQueue: {
			order.QueueDeliveryRequestRejected,
			order.QueueDeliveryRequestTimedOut,
		},
	}

	for queue, keys := range bindings {
		if _, err := c.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return err
		}
		for _, key := range keys {
			if err := c.ch.QueueBind(queue, key, rabbitmq.ExchangeName, false, nil); err != nil {
				return err
			}
		}
	}

	return nil
}

// Start begins consuming from all queues. Each queue gets its own goroutine;
// the method returns once the consumers are registered.
func (c *Consumer) Start(ctx context.Context) error {
	for _, queue := range []string{orderPaidQueue, requestResolvedQueue} {
		deliveries, err := c.ch.Consume(queue, "", false, false, false, false, nil)
		if err != nil {
			return err
		}

		go c.consume(ctx, queue, deliveries)
	}

	c.logger.InfoContext(ctx, "AMQP consumer started",
		"queues", []string{orderPaidQueue, requestResolvedQueue})
	return nil
}

func (c *Consumer) consume(ctx context.Context, queue string, deliveries <-chan amqp.Delivery) {
	for delivery := range deliveries {
		c.handle(ctx, queue, delivery)
	}
}

func (c *Consumer) handle(ctx context.Context, queue string, delivery amqp.Delivery) {
	var event orderEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		c.logger.ErrorContext(ctx, "Dropping undecodable message",
			"queue", queue, "routing_key", delivery.RoutingKey, "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	orderID, err := kernel.UUIDFromBytes(event.OrderID[:])
	if err != nil {
		c.logger.ErrorContext(ctx, "Dropping message without a valid order id",
			"queue", queue, "routing_key", delivery.RoutingKey, "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		_ = delivery.Nack(false, false)
		return
	}

	if err := c.dispatch.Handle(ctx, cmd); err != nil {
		// An unknown order is not coming back; everything else may be transient.
		if errors.Is(err, errs.ErrObjectNotFound) {
			c.logger.WarnContext(ctx, "Dropping event for unknown order",
				"order_id", orderID.String(), "routing_key", delivery.RoutingKey)
			_ = delivery.Nack(false, false)
			return
		}

		c.logger.ErrorContext(ctx, "Dispatch attempt failed, requeueing",
			"order_id", orderID.String(), "routing_key", delivery.RoutingKey, "error", err)
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
}

// Close releases the channel and connection.
func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
