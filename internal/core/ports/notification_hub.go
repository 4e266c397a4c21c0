package ports

import (
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
)

// Notification is one message pushed to live connections.
type Notification struct {
	Type      string
	Topic     string
	Payload   any
	Timestamp time.Time
}

// NotificationHub is the in-process event bus together with the connection
// registry it routes through.
type NotificationHub interface {
	// Publish delivers n to every connection subscribed to at least one of
	// topics, at most once per connection, without blocking on slow
	// receivers. It returns the number of connections the message was queued
	// for; zero subscribers is not an error.
	Publish(topics []string, n Notification) int

	// Subscribe and Unsubscribe fail only for unknown connections.
	Subscribe(connectionID, topic string) error
	Unsubscribe(connectionID, topic string) error

	// Identity returns the user bound to a connection, or nil for anonymous ones.
	Identity(connectionID string) (*kernel.UUID, error)

	// ConnectionsOf lists the live connections bound to userID.
	ConnectionsOf(userID kernel.UUID) []string
}
