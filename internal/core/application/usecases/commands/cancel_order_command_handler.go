package commands

import (
	"context"
)

// CancelOrderCommandHandler is ChangeOrderStatusCommandHandler fixed to
// CANCELLED, answering with the minimal OrderState. Cancelling an already
// cancelled or completed order fails with errs.ErrTransitionIsInvalid.
type CancelOrderCommandHandler struct {
	statusHandler ChangeOrderStatusCommandHandler
}

func NewCancelOrderCommandHandler(statusHandler ChangeOrderStatusCommandHandler) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{statusHandler: statusHandler}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (OrderState, error) {
	if err := cmd.Validate(); err != nil {
		return OrderState{}, err
	}

	details, err := h.statusHandler.Handle(ctx, cmd.inner)
	if err != nil {
		return OrderState{}, err
	}

	return OrderState{
		ID:        details.ID,
		Status:    details.Status,
		Version:   details.Version,
		UpdatedAt: details.UpdatedAt,
	}, nil
}
