// Package payment provides a stubbed payment gateway. The real provider
// integration lives outside this service; the stub resolves charges by magic
// payment-method ids so end-to-end flows, including declines, can be exercised
// without external calls.
package payment

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"

	"github.com/Rhymond/go-money"
)

// Magic payment-method ids recognized by the stub.
const (
	MethodSuccess        = "PAYMENT_METHOD_SUCCESS"
	MethodNotEnoughFunds = "PAYMENT_METHOD_NOT_ENOUGH_FUNDS"
	MethodUnknown        = "PAYMENT_METHOD_UNKNOWN"
)

// StubService implements ports.PaymentService with deterministic outcomes.
// Any method id other than the failure ids is charged successfully.
type StubService struct {
	logger *slog.Logger
}

// NewStubService creates the stub gateway.
func NewStubService(logger *slog.Logger) *StubService {
	return &StubService{logger: logger.With("component", "payment_stub")}
}

// Charge resolves the charge by the payment-method id.
func (s *StubService) Charge(ctx context.Context, userID string, paymentMethodID string, amount *money.Money) error {
	switch paymentMethodID {
	case MethodNotEnoughFunds:
		s.logger.InfoContext(ctx, "Charge declined",
			"user_id", userID, "amount", amount.Display())
		return ports.ErrPaymentDeclined
	case MethodUnknown:
		return ports.ErrUnknownPaymentMethod
	default:
		s.logger.InfoContext(ctx, "Charge accepted",
			"user_id", userID, "amount", amount.Display())
		return nil
	}
}

// Refund returns the amount to the customer.
func (s *StubService) Refund(ctx context.Context, userID string, amount *money.Money) error {
	s.logger.InfoContext(ctx, "Refund issued",
		"user_id", userID, "amount", amount.Display())
	return nil
}
