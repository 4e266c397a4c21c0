package ports

import (
	"context"

	"fueldelivery/internal/core/domain/model/chat"
)

// MessageRepository is the append-only store for chat messages.
type MessageRepository interface {
	Add(ctx context.Context, message *chat.Message) error
}
