package order

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/kernel"
)

// Routing keys for order and delivery events.
const (
	QueueOrderPlaced              = "order.placed"
	QueueOrderPaid                = "order.paid"
	QueueOrderAssigned            = "order.assigned"
	QueueOrderPreparationStarted  = "order.preparationStarted"
	QueueOrderPreparationFinished = "order.preparationFinished"
	QueueOrderPickedUp            = "order.pickedUp"
	QueueOrderDelivered           = "order.delivered"
	QueueOrderCanceled            = "order.canceled"

	QueueDeliveryRequested       = "delivery.requested"
	QueueDeliveryRequestAccepted = "deliveryRequest.accepted"
	QueueDeliveryRequestRejected = "deliveryRequest.rejected"
	QueueDeliveryRequestTimedOut = "deliveryRequest.timed_out"
)

// OrderPlaced is published when a customer submits a new order.
type OrderPlaced struct {
	OrderID        uuid.UUID      `json:"orderId"`
	UserID         string         `json:"userId"`
	RestaurantID   uuid.UUID      `json:"restaurantId"`
	TotalAmount    int64          `json:"totalAmount"`
	Currency       string         `json:"currency"`
	PickupAddress  kernel.Address `json:"pickupAddress"`
	DropoffAddress kernel.Address `json:"dropoffAddress"`
}

// RoutingKey implements kernel.DomainEvent.
func (OrderPlaced) RoutingKey() string { return QueueOrderPlaced }

// OrderPaid is published when payment for the order succeeds. Dispatch reacts
// to it by starting the courier search.
type OrderPaid struct {
	OrderID uuid.UUID `json:"orderId"`
}

// RoutingKey implements kernel.DomainEvent.
func (OrderPaid) RoutingKey() string { return QueueOrderPaid }

// OrderAssigned is published when a courier confirms the order's delivery.
type OrderAssigned struct {
	OrderID    uuid.UUID `json:"orderId"`
	DeliveryID uuid.UUID `json:"deliveryId"`
	CourierID  uuid.UUID `json:"courierId"`
}

// RoutingKey implements kernel.DomainEvent.
func (OrderAssigned) RoutingKey() string { return QueueOrderAssigned }

// OrderPreparationStarted is published when the restaurant starts cooking.
type OrderPreparationStarted struct {
	OrderID uuid.UUID `json:"orderId"`
}

// RoutingKey implements kernel.DomainEvent.
func (OrderPreparationStarted) RoutingKey() string { return QueueOrderPreparationStarted }

// OrderPreparationFinished is published when the order is ready for pickup.
type OrderPreparationFinished struct {
	OrderID uuid.UUID `json:"orderId"`
}

// RoutingKey implements kernel.DomainEvent.
func (OrderPreparationFinished) RoutingKey() string { return QueueOrderPreparationFinished }

// OrderPickedUp is published when the assigned courier collects the order.
type OrderPickedUp struct {
	OrderID   uuid.UUID `json:"orderId"`
	CourierID uuid.UUID `json:"courierId"`
}

// RoutingKey implements kernel.DomainEvent.
func (OrderPickedUp) RoutingKey() string { return QueueOrderPickedUp }

// OrderDelivered is published when the order reaches the customer.
type OrderDelivered struct {
	OrderID   uuid.UUID `json:"orderId"`
	CourierID uuid.UUID `json:"courierId"`
}

// RoutingKey implements kernel.DomainEvent.
func (OrderDelivered) RoutingKey() string { return QueueOrderDelivered }

// OrderCanceled is published when an order is canceled before delivery.
type OrderCanceled struct {
	OrderID uuid.UUID `json:"orderId"`
	Reason  string    `json:"reason"`
}

// RoutingKey implements kernel.DomainEvent.
func (OrderCanceled) RoutingKey() string { return QueueOrderCanceled }

// DeliveryCourierRequested is published when a courier is asked to take a
// delivery. The courier's client reacts to it by showing the offer.
type DeliveryCourierRequested struct {
	OrderID     uuid.UUID `json:"orderId"`
	DeliveryID  uuid.UUID `json:"deliveryId"`
	RequestID   uuid.UUID `json:"requestId"`
	CourierID   uuid.UUID `json:"courierId"`
	RequestedAt time.Time `json:"requestedAt"`
}

// RoutingKey implements kernel.DomainEvent.
func (DeliveryCourierRequested) RoutingKey() string { return QueueDeliveryRequested }

// NewDeliveryCourierRequested builds the event from the delivery and the
// freshly opened request.
func NewDeliveryCourierRequested(d *Delivery, r *DeliveryRequest) DeliveryCourierRequested {
	return DeliveryCourierRequested{
		OrderID:     d.OrderID().Bytes(),
		DeliveryID:  d.ID().Bytes(),
		RequestID:   r.ID().Bytes(),
		CourierID:   r.CourierID().Bytes(),
		RequestedAt: r.RequestedAt(),
	}
}

// DeliveryRequestAccepted is published when a courier accepts a delivery request.
type DeliveryRequestAccepted struct {
	OrderID    uuid.UUID `json:"orderId"`
	DeliveryID uuid.UUID `json:"deliveryId"`
	RequestID  uuid.UUID `json:"requestId"`
	CourierID  uuid.UUID `json:"courierId"`
}

// RoutingKey implements kernel.DomainEvent.
func (DeliveryRequestAccepted) RoutingKey() string { return QueueDeliveryRequestAccepted }

// NewDeliveryRequestAccepted builds the event from the delivery and the
// accepted request.
func NewDeliveryRequestAccepted(d *Delivery, r *DeliveryRequest) DeliveryRequestAccepted {
	return DeliveryRequestAccepted{
		OrderID:    d.OrderID().Bytes(),
		DeliveryID: d.ID().Bytes(),
		RequestID:  r.ID().Bytes(),
		CourierID:  r.CourierID().Bytes(),
	}
}

// DeliveryRequestRejected is published when a courier declines a delivery
// request. Dispatch reacts to it by trying the next candidate.
type DeliveryRequestRejected struct {
	OrderID    uuid.UUID `json:"orderId"`
	DeliveryID uuid.UUID `json:"deliveryId"`
	RequestID  uuid.UUID `json:"requestId"`
	CourierID  uuid.UUID `json:"courierId"`
}

// RoutingKey implements kernel.DomainEvent.
func (DeliveryRequestRejected) RoutingKey() string { return QueueDeliveryRequestRejected }

// NewDeliveryRequestRejected builds the event from the delivery and the
// rejected request.
func NewDeliveryRequestRejected(d *Delivery, r *DeliveryRequest) DeliveryRequestRejected {
	return DeliveryRequestRejected{
		OrderID:    d.OrderID().Bytes(),
		DeliveryID: d.ID().Bytes(),
		RequestID:  r.ID().Bytes(),
		CourierID:  r.CourierID().Bytes(),
	}
}

// DeliveryRequestTimedOut is published when a delivery request expires
// unanswered. Dispatch reacts to it the same way as to a rejection.
type DeliveryRequestTimedOut struct {
	OrderID    uuid.UUID `json:"orderId"`
	DeliveryID uuid.UUID `json:"deliveryId"`
	RequestID  uuid.UUID `json:"requestId"`
	CourierID  uuid.UUID `json:"courierId"`
}

// RoutingKey implements kernel.DomainEvent.
func (DeliveryRequestTimedOut) RoutingKey() string { return QueueDeliveryRequestTimedOut }

// NewDeliveryRequestTimedOut builds the event from the delivery and the
// expired request.
func NewDeliveryRequestTimedOut(d *Delivery, r *DeliveryRequest) DeliveryRequestTimedOut {
	return DeliveryRequestTimedOut{
		OrderID:    d.OrderID().Bytes(),
		DeliveryID: d.ID().Bytes(),
		RequestID:  r.ID().Bytes(),
		CourierID:  r.CourierID().Bytes(),
	}
}
