package ports

import (
	"context"

	"fueldelivery/internal/core/domain/model/kernel"
)

// DomainEventPublisher receives events after the transaction that recorded
// them has committed. Implementations must not block on slow consumers.
type DomainEventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
