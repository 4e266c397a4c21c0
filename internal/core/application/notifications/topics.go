package notifications

import (
	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/domain/model/kernel"
)

// BroadcastTopic reaches every connection.
const BroadcastTopic = "broadcast:all"

func OrderTopic(orderID kernel.UUID) string     { return "order:" + orderID.String() }
func StationTopic(stationID kernel.UUID) string { return "station:" + stationID.String() }
func UserTopic(userID kernel.UUID) string       { return "user:" + userID.String() }

// ChatTopic names the conversation of an unordered user pair. Both
// participants derive the same topic regardless of who sends.
func ChatTopic(c chat.Conversation) string { return "chat:" + c.String() }

// Wire message types.
const (
	TypeChat                = "chat"
	TypeOrderStatusUpdate   = "orderStatusUpdate"
	TypeOrderPlaced         = "orderPlaced"
	TypeOrderDriverAssigned = "orderDriverAssigned"
)

// Scope selects what a connection asks to follow.
type Scope string

const (
	ScopeOrder        Scope = "order"
	ScopeStation      Scope = "station"
	ScopeConversation Scope = "conversation"
)
