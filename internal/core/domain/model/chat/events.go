package chat

import (
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
)

const EventMessageSent = "chat.message_sent"

// MessageSent is recorded when a new message is accepted.
type MessageSent struct {
	MessageID  kernel.UUID
	SenderID   kernel.UUID
	ReceiverID kernel.UUID
	Content    string
	CreatedAt  time.Time
}

func (e MessageSent) EventName() string        { return EventMessageSent }
func (e MessageSent) AggregateID() kernel.UUID { return e.MessageID }
func (e MessageSent) OccurredAt() time.Time    { return e.CreatedAt }

func (e MessageSent) Conversation() Conversation {
	return NewConversation(e.SenderID, e.ReceiverID)
}
