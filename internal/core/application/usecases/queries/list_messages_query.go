package queries

import (
	"errors"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/pkg/guard"
)

var ErrListMessagesQueryIsNotConstructed = errors.New(
	"ListMessagesQuery must be created via NewListMessagesQuery constructor",
)

// ListMessagesQuery returns every message a user sent or received, oldest first.
type ListMessagesQuery struct {
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewListMessagesQuery(userID kernel.UUID) (ListMessagesQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListMessagesQuery{}, err
	}
	return ListMessagesQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListMessagesQuery) Validate() error {
	return q.guard.Validate(ErrListMessagesQueryIsNotConstructed)
}

func (q ListMessagesQuery) UserID() kernel.UUID {
	return q.userID
}

// MessageView is the read model of a chat message.
type MessageView struct {
	ID         kernel.UUID
	SenderID   kernel.UUID
	ReceiverID kernel.UUID
	Content    string
	CreatedAt  time.Time
}
