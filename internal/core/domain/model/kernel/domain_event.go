package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a mutation.
// Events are collected by the unit of work and published only after commit.
type DomainEvent interface {
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventRecorder buffers domain events on an aggregate until they are pulled.
// It is embedded by value; the zero value is ready to use.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event to the buffer.
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// PullDomainEvents returns the buffered events and clears the buffer.
func (r *EventRecorder) PullDomainEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}

// PendingDomainEvents returns the buffered events without clearing them.
func (r *EventRecorder) PendingDomainEvents() []DomainEvent {
	return append([]DomainEvent(nil), r.events...)
}
