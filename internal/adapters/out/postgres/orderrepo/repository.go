package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/errs"

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

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the aggregate if and only if the row is still at the
// aggregate's base version. A zero-row result is resolved into NotFound or
// VersionConflict with one extra read.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	changes := map[string]any{
		"status":     dto.Status,
		"driver_id":  dto.DriverID,
		"version":    dto.Version,
		"updated_at": dto.UpdatedAt,
	}
	if dto.DeletedAt.Valid {
		changes["deleted_at"] = dto.DeletedAt
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.BaseVersion()).
		Updates(changes)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missedUpdate(ctx, aggregate)
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) missedUpdate(ctx context.Context, aggregate *order.Order) error {
	var current OrderDTO
	err := r.db.WithContext(ctx).Select("version").Take(&current, "id = ?", aggregate.ID().Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	if err != nil {
		return err
	}

	return errs.NewVersionConflictErrorWithCause(
		"order", aggregate.ID(), aggregate.BaseVersion(),
		fmt.Errorf("stored version is %d", current.Version),
	)
}

// Get retrieves a live order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListPendingPlacedBefore returns the oldest PENDING orders created before cutoff.
func (r *GormOrderRepository) ListPendingPlacedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", order.Pending.String(), cutoff.UTC()).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

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
