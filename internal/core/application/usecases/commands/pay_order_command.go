package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrPayOrderCommandIsNotConstructed = errors.New(
		"PayOrderCommand must be created via NewPayOrderCommand constructor",
	)
	ErrPaymentMethodIsRequired = errors.New("payment method id is required")
)

// PayOrderCommand represents a request to charge a placed order.
type PayOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	paymentMethodID string

	guard guard.ConstructorGuard
}

// NewPayOrderCommand creates a command to pay for an order.
func NewPayOrderCommand(orderID kernel.UUID, paymentMethodID string) (PayOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PayOrderCommand{}, err
	}
	if paymentMethodID == "" {
		return PayOrderCommand{}, ErrPaymentMethodIsRequired
	}

	return PayOrderCommand{
		orderID:         orderID,
		paymentMethodID: paymentMethodID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

// OrderID returns the order being paid.
func (c PayOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentMethodID returns the customer's payment method.
func (c PayOrderCommand) PaymentMethodID() string {
	return c.paymentMethodID
}
