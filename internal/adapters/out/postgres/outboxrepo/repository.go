package outboxrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores messages for later publication.
func (r *GormOutboxRepository) Add(ctx context.Context, messages []ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, message := range messages {
		dtos = append(dtos, MessageDTO{
			ID:         message.ID.Bytes(),
			RoutingKey: message.RoutingKey,
			Payload:    message.Payload,
		})
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetUnpublished retrieves up to limit unpublished messages, oldest first.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		messages = append(messages, ports.OutboxMessage{
			ID:         id,
			RoutingKey: dto.RoutingKey,
			Payload:    dto.Payload,
			CreatedAt:  dto.CreatedAt,
		})
	}

	return messages, nil
}

// MarkPublished marks the given messages as delivered to the broker.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, id.Bytes())
	}

	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ?", rawIDs).
		Update("published_at", &now).Error
}
