package order

import (
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
)

const (
	EventPlaced         = "order.placed"
	EventStatusChanged  = "order.status_changed"
	EventDriverAssigned = "order.driver_assigned"
)

// Placed is recorded when a customer places a new order.
type Placed struct {
	OrderID   kernel.UUID
	UserID    kernel.UUID
	StationID kernel.UUID
	Status    Status
	Version   int64
	PlacedAt  time.Time
}

func (e Placed) EventName() string        { return EventPlaced }
func (e Placed) AggregateID() kernel.UUID { return e.OrderID }
func (e Placed) OccurredAt() time.Time    { return e.PlacedAt }

// StatusChanged is recorded on every accepted status transition.
type StatusChanged struct {
	OrderID   kernel.UUID
	UserID    kernel.UUID
	StationID kernel.UUID
	DriverID  *kernel.UUID
	From      Status
	To        Status
	Version   int64
	UpdatedAt time.Time
}

func (e StatusChanged) EventName() string        { return EventStatusChanged }
func (e StatusChanged) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChanged) OccurredAt() time.Time    { return e.UpdatedAt }

// DriverAssigned is recorded when a driver takes (or is moved onto) an order.
type DriverAssigned struct {
	OrderID   kernel.UUID
	UserID    kernel.UUID
	StationID kernel.UUID
	DriverID  kernel.UUID
	Status    Status
	Version   int64
	UpdatedAt time.Time
}

func (e DriverAssigned) EventName() string        { return EventDriverAssigned }
func (e DriverAssigned) AggregateID() kernel.UUID { return e.OrderID }
func (e DriverAssigned) OccurredAt() time.Time    { return e.UpdatedAt }
