// Package notifications turns committed domain events into realtime pushes
// and decides which connections may follow which topics.
//
// Routing:
//
//	order.Placed          -> station:<id>, user:<customer>              (orderPlaced)
//	order.StatusChanged   -> order:<id>, station:<id>, user:<customer>,
//	                         user:<driver>                              (orderStatusUpdate)
//	order.DriverAssigned  -> order:<id>, user:<driver>                  (orderDriverAssigned)
//	chat.MessageSent      -> chat:<low>:<high>                          (chat)
//
// Delivery is fire-and-forget: Publish never returns an error, so a push that
// reaches nobody cannot fail the write that produced it.
package notifications

import (
	"context"
	"log/slog"

	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/core/domain/services"
	"fueldelivery/internal/core/ports"
	"fueldelivery/internal/pkg/errs"
)

// OrderReader loads an order for subscription checks.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// Dispatcher implements ports.DomainEventPublisher on top of a NotificationHub.
type Dispatcher struct {
	hub       ports.NotificationHub
	orders    OrderReader
	directory ports.AccountDirectory
	policy    services.OrderAccessPolicy
	logger    *slog.Logger
}

var _ ports.DomainEventPublisher = (*Dispatcher)(nil)

func NewDispatcher(
	hub ports.NotificationHub,
	orders OrderReader,
	directory ports.AccountDirectory,
	logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		hub:       hub,
		orders:    orders,
		directory: directory,
		policy:    services.NewOrderAccessPolicy(),
		logger:    logger.With("component", "notification_dispatcher"),
	}
}

// Publish routes each event to its topics. Unknown events are ignored.
func (d *Dispatcher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	for _, event := range events {
		switch e := event.(type) {
		case order.Placed:
			d.publish(ctx, e, []string{StationTopic(e.StationID), UserTopic(e.UserID)},
				TypeOrderPlaced, placedPayloadOf(e))

		case order.StatusChanged:
			topics := []string{OrderTopic(e.OrderID), StationTopic(e.StationID), UserTopic(e.UserID)}
			if e.DriverID != nil {
				topics = append(topics, UserTopic(*e.DriverID))
			}
			d.publish(ctx, e, topics, TypeOrderStatusUpdate, statusPayloadOf(e))

		case order.DriverAssigned:
			d.publish(ctx, e, []string{OrderTopic(e.OrderID), UserTopic(e.DriverID)},
				TypeOrderDriverAssigned, driverPayloadOf(e))

		case chat.MessageSent:
			topic := ChatTopic(e.Conversation())
			d.bindConversation(ctx, e.Conversation(), topic)
			d.publish(ctx, e, []string{topic}, TypeChat, chatPayloadOf(e))

		default:
			d.logger.DebugContext(ctx, "no route for domain event", "event", event.EventName())
		}
	}
	return nil
}

func (d *Dispatcher) publish(ctx context.Context, event kernel.DomainEvent, topics []string, msgType string, payload any) {
	delivered := d.hub.Publish(topics, ports.Notification{
		Type:      msgType,
		Topic:     topics[0],
		Payload:   payload,
		Timestamp: event.OccurredAt(),
	})
	d.logger.DebugContext(ctx, "notification published",
		"event", event.EventName(),
		"aggregate_id", event.AggregateID().String(),
		"topic", topics[0],
		"delivered", delivered,
	)
}

// bindConversation subscribes every live connection of both participants to
// the conversation topic, so a message reaches them without an explicit
// subscribe.
func (d *Dispatcher) bindConversation(ctx context.Context, c chat.Conversation, topic string) {
	for _, user := range []kernel.UUID{c.Low(), c.High()} {
		for _, connID := range d.hub.ConnectionsOf(user) {
			if err := d.hub.Subscribe(connID, topic); err != nil {
				// The connection went away between lookup and subscribe.
				d.logger.DebugContext(ctx, "skip conversation binding", "connection_id", connID, "error", err)
			}
		}
	}
}

// Connect applies the implicit subscriptions of a new connection:
// broadcast:all for everyone and user:<id> for identified ones.
func (d *Dispatcher) Connect(connectionID string) error {
	if err := d.hub.Subscribe(connectionID, BroadcastTopic); err != nil {
		return err
	}

	identity, err := d.hub.Identity(connectionID)
	if err != nil {
		return err
	}
	if identity == nil {
		return nil
	}
	return d.hub.Subscribe(connectionID, UserTopic(*identity))
}

// Subscribe authorizes and adds an explicit subscription, returning its topic.
//
//   - ScopeOrder: customer, assigned driver or station owner of the order
//   - ScopeStation: station owner
//   - ScopeConversation: any identified user, for the conversation with id
func (d *Dispatcher) Subscribe(ctx context.Context, connectionID string, scope Scope, id kernel.UUID) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}

	identity, err := d.hub.Identity(connectionID)
	if err != nil {
		return "", err
	}
	if identity == nil {
		return "", errs.NewAccessIsDeniedError("anonymous", string(scope)+":"+id.String())
	}

	var topic string
	switch scope {
	case ScopeOrder:
		topic, err = d.authorizeOrder(ctx, *identity, id)
	case ScopeStation:
		topic, err = d.authorizeStation(ctx, *identity, id)
	case ScopeConversation:
		if identity.IsEqual(id) {
			return "", errs.NewValueIsInvalidError("conversation with oneself")
		}
		topic = ChatTopic(chat.NewConversation(*identity, id))
	default:
		return "", errs.NewValueIsInvalidError("scope")
	}
	if err != nil {
		return "", err
	}

	if err = d.hub.Subscribe(connectionID, topic); err != nil {
		return "", err
	}
	return topic, nil
}

// Unsubscribe removes an explicit subscription.
func (d *Dispatcher) Unsubscribe(connectionID, topic string) error {
	return d.hub.Unsubscribe(connectionID, topic)
}

func (d *Dispatcher) authorizeOrder(ctx context.Context, actor, orderID kernel.UUID) (string, error) {
	o, err := d.orders.Get(ctx, orderID)
	if err != nil {
		return "", err
	}

	var owner *kernel.UUID
	if !o.IsParticipant(actor) {
		if owner, err = d.directory.StationOwner(ctx, o.StationID()); err != nil {
			return "", err
		}
	}
	if err = d.policy.Authorize(o, actor, owner); err != nil {
		return "", err
	}
	return OrderTopic(orderID), nil
}

func (d *Dispatcher) authorizeStation(ctx context.Context, actor, stationID kernel.UUID) (string, error) {
	owner, err := d.directory.StationOwner(ctx, stationID)
	if err != nil {
		return "", err
	}
	if err = d.policy.AuthorizeStation(stationID, actor, owner); err != nil {
		return "", err
	}
	return StationTopic(stationID), nil
}
