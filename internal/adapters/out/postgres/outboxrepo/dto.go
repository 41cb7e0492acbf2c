// Package outboxrepo persists domain events in the transactional outbox table.
// Messages are written in the same transaction as the aggregate change that
// produced them and relayed to the broker by a background job.
package outboxrepo

import (
	"time"

	"github.com/google/uuid"
)

// MessageDTO represents one captured domain event awaiting publication.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoutingKey  string     `gorm:"type:varchar(255);not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox"
}
