package chat

import "fueldelivery/internal/core/domain/model/kernel"

// Conversation is the unordered pair of users exchanging messages.
// NewConversation(a, b) and NewConversation(b, a) are equal.
type Conversation struct {
	low  kernel.UUID
	high kernel.UUID
}

func NewConversation(a, b kernel.UUID) Conversation {
	if b.Less(a) {
		a, b = b, a
	}
	return Conversation{low: a, high: b}
}

func (c Conversation) Low() kernel.UUID  { return c.low }
func (c Conversation) High() kernel.UUID { return c.high }

// Includes reports whether userID is one side of the conversation.
func (c Conversation) Includes(userID kernel.UUID) bool {
	return c.low.IsEqual(userID) || c.high.IsEqual(userID)
}

// Peer returns the other side of the conversation for userID.
func (c Conversation) Peer(userID kernel.UUID) (kernel.UUID, bool) {
	switch {
	case c.low.IsEqual(userID):
		return c.high, true
	case c.high.IsEqual(userID):
		return c.low, true
	default:
		return kernel.UUID{}, false
	}
}

func (c Conversation) String() string {
	return c.low.String() + ":" + c.high.String()
}
