package commands

import (
	"errors"
	"strings"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/pkg/errs"
	"fueldelivery/internal/pkg/guard"
)

var ErrSendChatMessageCommandIsNotConstructed = errors.New(
	"SendChatMessageCommand must be created via NewSendChatMessageCommand constructor",
)

// SendChatMessageCommand delivers a direct message from one user to another.
// It is issued both by POST /messages and by the "chat" socket frame.
type SendChatMessageCommand struct {
	messageID  kernel.UUID
	senderID   kernel.UUID
	receiverID kernel.UUID
	content    string

	guard guard.ConstructorGuard
}

func NewSendChatMessageCommand(
	messageID, senderID, receiverID kernel.UUID,
	content string,
) (SendChatMessageCommand, error) {
	content = strings.TrimSpace(content)

	var contentErr error
	if content == "" {
		contentErr = errs.NewValueIsRequiredError("content")
	}

	if err := errors.Join(
		messageID.Validate(),
		required("senderId", senderID),
		required("receiverId", receiverID),
		contentErr,
	); err != nil {
		return SendChatMessageCommand{}, err
	}

	return SendChatMessageCommand{
		messageID:  messageID,
		senderID:   senderID,
		receiverID: receiverID,
		content:    content,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SendChatMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendChatMessageCommandIsNotConstructed)
}

func (c SendChatMessageCommand) MessageID() kernel.UUID  { return c.messageID }
func (c SendChatMessageCommand) SenderID() kernel.UUID   { return c.senderID }
func (c SendChatMessageCommand) ReceiverID() kernel.UUID { return c.receiverID }
func (c SendChatMessageCommand) Content() string         { return c.content }
