package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database together with its delivery.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The order row carries the
// optimistic-concurrency version for the whole aggregate: the write only
// applies when the stored row still has the version the aggregate was loaded
// at, and the delivery with its requests is rewritten under that gate.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"status":  dto.Status,
			"version": dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order")
	}

	// Use Session with FullSaveAssociations to rewrite the delivery and its
	// request rows in one go.
	if err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(dto.Delivery).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its delivery and requests.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Delivery.Requests").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCourier retrieves the orders with the given ids. Dispatch passes a
// courier's active-order id set here to estimate the remaining workload.
func (r *GormOrderRepository) GetByCourier(ctx context.Context, orderIDs []kernel.UUID) ([]*order.Order, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	rawIDs := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Delivery.Requests").
		Where("id IN ?", rawIDs).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllUncompleted retrieves every order that has not reached a terminal status.
func (r *GormOrderRepository) GetAllUncompleted(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Delivery.Requests").
		Where("status NOT IN ?", []string{
			order.StatusDelivered.String(),
			order.StatusCanceled.String(),
		}).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetWithStaleRequests retrieves orders whose delivery has an open courier
// request issued before the cutoff. The timeout sweep job uses this to expire
// requests that outlived their scheduled timer, for example across a restart.
func (r *GormOrderRepository) GetWithStaleRequests(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Delivery.Requests").
		Joins("JOIN deliveries ON deliveries.order_id = orders.id").
		Joins("JOIN delivery_requests ON delivery_requests.delivery_id = deliveries.id").
		Where("delivery_requests.status = ? AND delivery_requests.requested_at < ?",
			order.Requested.String(), cutoff).
		Distinct("orders.*").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
