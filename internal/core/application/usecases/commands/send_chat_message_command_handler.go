package commands

import (
	"context"
	"time"

	"fueldelivery/internal/core/domain/model/chat"
	"fueldelivery/internal/core/ports"
)

// SendChatMessageCommandHandler persists a chat message. Delivery to live
// connections happens after commit through the MessageSent event, so a slow
// or vanished receiver never fails the send.
type SendChatMessageCommandHandler struct {
	uowFactory MessageUoWFactory
	directory  ports.AccountDirectory
}

func NewSendChatMessageCommandHandler(
	uowFactory MessageUoWFactory,
	directory ports.AccountDirectory,
) SendChatMessageCommandHandler {
	return SendChatMessageCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
	}
}

func (h SendChatMessageCommandHandler) Handle(ctx context.Context, cmd SendChatMessageCommand) (MessageDetails, error) {
	if err := cmd.Validate(); err != nil {
		return MessageDetails{}, err
	}

	if err := runReferenceChecks(ctx, []referenceCheck{
		{"sender", cmd.SenderID(), h.directory.UserExists},
		{"receiver", cmd.ReceiverID(), h.directory.UserExists},
	}); err != nil {
		return MessageDetails{}, err
	}

	message, err := chat.NewMessage(cmd.MessageID(), cmd.SenderID(), cmd.ReceiverID(), cmd.Content(), time.Now())
	if err != nil {
		return MessageDetails{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return MessageDetails{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MessageRepository().Add(ctx, message); err != nil {
		return MessageDetails{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return MessageDetails{}, err
	}

	return messageDetailsOf(message), nil
}
