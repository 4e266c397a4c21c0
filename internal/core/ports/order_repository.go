package ports

import (
	"context"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a newly placed order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate only if the stored version still equals
	// aggregate.BaseVersion(). The check and the write are one statement.
	//
	// Errors:
	//   - errs.ErrVersionConflict when another writer moved the version
	//   - errs.ErrObjectNotFound when the order is absent or soft-deleted
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves a live (not soft-deleted) order by id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListPendingPlacedBefore returns up to limit PENDING orders created
	// before cutoff, oldest first.
	ListPendingPlacedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error)
}
