// Package rabbitmq implements the event publisher port on top of a RabbitMQ
// topic exchange. Every domain event goes to one exchange under its routing
// key; consumers bind queues per key.
package rabbitmq

import (
	"context"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the topic exchange all domain events are published to.
const ExchangeName = "dispatch.events"

// Publisher delivers serialized domain events to RabbitMQ with publisher
// confirms. Publish calls are serialized with a mutex because confirms are
// read from a single channel in order.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	acks <-chan amqp.Confirmation
	mu   sync.Mutex
}

// NewPublisher connects to the broker, declares the events exchange, and
// enables publisher confirms.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Publisher{conn: conn, ch: ch, acks: acks}, nil
}

// Publish sends the payload to the events exchange under the routing key and
// waits for the broker's confirm. Messages are persistent so a broker restart
// does not lose them.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(
		ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now(),
			Body:         payload,
		},
	); err != nil {
		return err
	}

	select {
	case confirmation := <-p.acks:
		if confirmation.Ack {
			return nil
		}
		return errors.New("publish NACK from broker")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
