package ports

import (
	"context"
	"errors"

	"github.com/Rhymond/go-money"
)

var (
	// ErrPaymentDeclined is returned when the payment provider refuses the
	// charge, for example for insufficient funds.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrUnknownPaymentMethod is returned when the payment method id does
	// not resolve to anything chargeable.
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// PaymentService charges customers for their orders.
type PaymentService interface {
	// Charge takes the amount from the customer's payment method. Returns
	// ErrPaymentDeclined when the provider refuses and
	// ErrUnknownPaymentMethod when the method id resolves to nothing; any
	// other error means the outcome is unknown and the charge may be retried.
	Charge(ctx context.Context, userID string, paymentMethodID string, amount *money.Money) error

	// Refund returns a previously charged amount to the customer, used when
	// a paid order is canceled before delivery.
	Refund(ctx context.Context, userID string, amount *money.Money) error
}
