// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations. An order row owns a
// delivery row, which in turn owns the delivery-request rows; the whole cluster is stored
// and loaded as one aggregate.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items are stored as a jsonb column: they are immutable after checkout
// and never queried individually. Statuses are stored by name so the tables
// stay readable and survive renumbering of the domain enums.
type OrderDTO struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID       string      `gorm:"type:varchar(255);not null;index"`
	RestaurantID uuid.UUID   `gorm:"type:uuid;not null"`
	Items        ItemListDTO `gorm:"type:jsonb"`
	TotalAmount  int64       `gorm:"not null"`
	Currency     string      `gorm:"type:varchar(3);not null"`
	Status       string      `gorm:"type:varchar(32);not null;index"`
	CreatedAt    time.Time   `gorm:"autoCreateTime"`
	Version      int         `gorm:"not null"`

	Delivery *DeliveryDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryDTO represents the delivery child row of an order.
type DeliveryDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Pickup            AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff           AddressDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	Status            string     `gorm:"type:varchar(32);not null;index"`
	AssignedCourierID *uuid.UUID `gorm:"type:uuid;index"`

	Requests []DeliveryRequestDTO `gorm:"foreignKey:DeliveryID;references:ID"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// DeliveryRequestDTO represents one courier request issued for a delivery.
type DeliveryRequestDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CourierID   uuid.UUID `gorm:"type:uuid;not null"`
	Status      string    `gorm:"type:varchar(32);not null;index"`
	RequestedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for delivery request entities.
func (DeliveryRequestDTO) TableName() string {
	return "delivery_requests"
}

// AddressDTO represents an embedded street address with coordinates.
type AddressDTO struct {
	Lat     float64 `gorm:"not null"`
	Lng     float64 `gorm:"not null"`
	Street  string  `gorm:"type:varchar(255);not null"`
	City    string  `gorm:"type:varchar(255)"`
	Country string  `gorm:"type:varchar(255)"`
}

// ItemDTO is the jsonb representation of one order line item.
type ItemDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// ItemListDTO stores order line items as a jsonb array.
type ItemListDTO []ItemDTO

// Value implements driver.Valuer for jsonb storage.
func (l ItemListDTO) Value() (driver.Value, error) {
	if l == nil {
		l = ItemListDTO{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for jsonb retrieval.
func (l *ItemListDTO) Scan(value any) error {
	if value == nil {
		*l = ItemListDTO{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make(ItemListDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			Name:     item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price().Amount(),
		})
	}

	delivery := deliveryFromDomain(aggregate.Delivery())

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		UserID:       aggregate.UserID(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		Items:        items,
		TotalAmount:  aggregate.Total().Amount(),
		Currency:     aggregate.Total().Currency().Code,
		Status:       aggregate.Status().String(),
		Version:      aggregate.Version(),
		Delivery:     &delivery,
	}
}

func deliveryFromDomain(delivery *order.Delivery) DeliveryDTO {
	var courierID *uuid.UUID
	if id := delivery.AssignedCourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	requests := make([]DeliveryRequestDTO, 0, len(delivery.Requests()))
	for _, request := range delivery.Requests() {
		requests = append(requests, DeliveryRequestDTO{
			ID:          request.ID().Bytes(),
			DeliveryID:  request.DeliveryID().Bytes(),
			CourierID:   request.CourierID().Bytes(),
			Status:      request.Status().String(),
			RequestedAt: request.RequestedAt(),
		})
	}

	return DeliveryDTO{
		ID:                delivery.ID().Bytes(),
		OrderID:           delivery.OrderID().Bytes(),
		Pickup:            addressFromDomain(delivery.PickupAddress()),
		Dropoff:           addressFromDomain(delivery.DropoffAddress()),
		Status:            delivery.Status().String(),
		AssignedCourierID: courierID,
		Requests:          requests,
	}
}

func addressFromDomain(address kernel.Address) AddressDTO {
	return AddressDTO{
		Lat:     address.Location().Lat(),
		Lng:     address.Location().Lng(),
		Street:  address.Street(),
		City:    address.City(),
		Country: address.Country(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the delivery and its requests
// using the Restore constructors.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		domainItem, itemErr := order.NewOrderItem(item.Name, item.Quantity, money.New(item.Price, dto.Currency))
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, domainItem)
	}

	if dto.Delivery == nil {
		return nil, fmt.Errorf("order %s has no delivery row", dto.ID)
	}
	delivery, err := deliveryToDomain(*dto.Delivery)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.UserID,
		restaurantID,
		items,
		money.New(dto.TotalAmount, dto.Currency),
		order.StatusFromString(dto.Status),
		delivery,
		dto.Version,
	)
}

func deliveryToDomain(dto DeliveryDTO) (*order.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := addressToDomain(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.AssignedCourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.AssignedCourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	requests := make([]*order.DeliveryRequest, 0, len(dto.Requests))
	for _, request := range dto.Requests {
		domainRequest, requestErr := requestToDomain(request)
		if requestErr != nil {
			return nil, requestErr
		}
		requests = append(requests, domainRequest)
	}

	return order.RestoreDelivery(
		id,
		orderID,
		pickup,
		dropoff,
		order.DeliveryStatusFromString(dto.Status),
		courierID,
		requests,
	)
}

func requestToDomain(dto DeliveryRequestDTO) (*order.DeliveryRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreDeliveryRequest(
		id,
		deliveryID,
		courierID,
		order.RequestStatusFromString(dto.Status),
		dto.RequestedAt,
	)
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(location, dto.Street, dto.City, dto.Country)
}
