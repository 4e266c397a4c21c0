// Package kafka publishes order domain events to a Kafka topic.
package kafka

import (
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
)

// OrderEvent is the Kafka message envelope for order domain events.
type OrderEvent struct {
	EventType  string    `json:"event_type"`
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	StationID  string    `json:"station_id"`
	DriverID   string    `json:"driver_id,omitempty"`
	Status     string    `json:"status"`
	OldStatus  string    `json:"old_status,omitempty"`
	Version    int64     `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
}

// orderEventOf maps a domain event; ok is false for events that are not
// about orders.
func orderEventOf(event kernel.DomainEvent) (OrderEvent, bool) {
	out := OrderEvent{
		EventType:  event.EventName(),
		OccurredAt: event.OccurredAt().UTC(),
	}

	switch e := event.(type) {
	case order.Placed:
		out.OrderID = e.OrderID.String()
		out.UserID = e.UserID.String()
		out.StationID = e.StationID.String()
		out.Status = e.Status.String()
		out.Version = e.Version
	case order.StatusChanged:
		out.OrderID = e.OrderID.String()
		out.UserID = e.UserID.String()
		out.StationID = e.StationID.String()
		if e.DriverID != nil {
			out.DriverID = e.DriverID.String()
		}
		out.Status = e.To.String()
		out.OldStatus = e.From.String()
		out.Version = e.Version
	case order.DriverAssigned:
		out.OrderID = e.OrderID.String()
		out.UserID = e.UserID.String()
		out.StationID = e.StationID.String()
		out.DriverID = e.DriverID.String()
		out.Status = e.Status.String()
		out.Version = e.Version
	default:
		return OrderEvent{}, false
	}
	return out, true
}
