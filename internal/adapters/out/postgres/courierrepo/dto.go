// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// The active-order and pending-request id sets are stored as jsonb arrays: they
// are small, always loaded with the courier, and never queried on their own.
type CourierDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	OnShift         bool      `gorm:"not null"`
	ActiveOrders    IDListDTO `gorm:"type:jsonb"`
	PendingRequests IDListDTO `gorm:"type:jsonb"`
	Version         int       `gorm:"not null"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// IDListDTO stores a set of aggregate ids as a jsonb array.
type IDListDTO []uuid.UUID

// Value implements driver.Valuer for jsonb storage.
func (l IDListDTO) Value() (driver.Value, error) {
	if l == nil {
		l = IDListDTO{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for jsonb retrieval.
func (l *IDListDTO) Scan(value any) error {
	if value == nil {
		*l = IDListDTO{}
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

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		OnShift:         aggregate.IsOnShift(),
		ActiveOrders:    idsToDTO(aggregate.ActiveOrders()),
		PendingRequests: idsToDTO(aggregate.PendingRequests()),
		Version:         aggregate.Version(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	activeOrders, err := idsFromDTO(dto.ActiveOrders)
	if err != nil {
		return nil, err
	}
	pendingRequests, err := idsFromDTO(dto.PendingRequests)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, dto.OnShift, activeOrders, pendingRequests, dto.Version)
}

func idsToDTO(ids []kernel.UUID) IDListDTO {
	out := make(IDListDTO, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}

func idsFromDTO(ids IDListDTO) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		converted, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}
