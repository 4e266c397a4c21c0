package realtime

import (
	"encoding/json"
	"log/slog"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/ports"
)

// Envelope is the wire form of every pushed message.
type Envelope struct {
	Type      string    `json:"type"`
	Topic     string    `json:"topic"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Bus routes notifications to the connections subscribed in a Registry.
// It implements ports.NotificationHub.
type Bus struct {
	registry *Registry
	metrics  *Metrics
	logger   *slog.Logger
}

var _ ports.NotificationHub = (*Bus)(nil)

func NewBus(registry *Registry, metrics *Metrics, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		registry: registry,
		metrics:  metrics,
		logger:   logger.With("component", "event_bus"),
	}
}

// Publish queues n for every distinct connection subscribed to any of topics.
// The envelope's topic is the first of topics the connection matched, or
// n.Topic when set.
func (b *Bus) Publish(topics []string, n ports.Notification) int {
	recipients := b.registry.recipients(topics)
	b.metrics.incPublished(n.Type)
	if len(recipients) == 0 {
		return 0
	}

	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}

	encoded := make(map[string][]byte, 1)
	delivered := 0
	for _, rcpt := range recipients {
		topic := rcpt.topic
		if n.Topic != "" {
			topic = n.Topic
		}

		msg, ok := encoded[topic]
		if !ok {
			var err error
			msg, err = Encode(n.Type, topic, n.Payload, n.Timestamp)
			if err != nil {
				b.logger.Error("failed to encode notification", "type", n.Type, "topic", topic, "error", err)
				b.metrics.incDropped("encode")
				return delivered
			}
			encoded[topic] = msg
		}

		switch rcpt.conn.enqueue(msg) {
		case enqueued:
			delivered++
		case droppedFull:
			b.metrics.incDropped("queue_full")
			b.logger.Warn("dropped notification for slow connection",
				"connection_id", rcpt.conn.ID(),
				"type", n.Type,
				"topic", topic,
			)
		case droppedClosed:
			b.metrics.incDropped("closed")
		}
	}

	b.metrics.addDelivered(delivered)
	return delivered
}

// Send queues a message for one connection only, such as a subscription
// acknowledgement. It reports whether the message was queued.
func (b *Bus) Send(connectionID string, n ports.Notification) bool {
	conn, ok := b.registry.lookup(connectionID)
	if !ok {
		return false
	}

	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	msg, err := Encode(n.Type, n.Topic, n.Payload, n.Timestamp)
	if err != nil {
		b.logger.Error("failed to encode notification", "type", n.Type, "error", err)
		return false
	}
	return conn.enqueue(msg) == enqueued
}

func (b *Bus) Subscribe(connectionID, topic string) error {
	return b.registry.Subscribe(connectionID, topic)
}

func (b *Bus) Unsubscribe(connectionID, topic string) error {
	return b.registry.Unsubscribe(connectionID, topic)
}

func (b *Bus) Identity(connectionID string) (*kernel.UUID, error) {
	return b.registry.Identity(connectionID)
}

func (b *Bus) ConnectionsOf(userID kernel.UUID) []string {
	return b.registry.ConnectionsOf(userID)
}

// Encode renders the wire envelope.
func Encode(msgType, topic string, payload any, ts time.Time) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:      msgType,
		Topic:     topic,
		Payload:   payload,
		Timestamp: ts.UTC(),
	})
}
