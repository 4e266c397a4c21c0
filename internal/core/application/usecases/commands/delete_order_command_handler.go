package commands

import (
	"context"
	"time"

	"fueldelivery/internal/core/domain/model/order"
)

// DeleteOrderCommandHandler hides an order from reads while keeping the row
// for ledgers that reference it. The version is bumped like any other write.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (OrderState, error) {
	if err := cmd.Validate(); err != nil {
		return OrderState{}, err
	}

	o, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), cmd.ExpectedVersion(),
		func(_ context.Context, o *order.Order, now time.Time) (bool, error) {
			return true, o.MarkDeleted(now)
		},
	)
	if err != nil {
		return OrderState{}, err
	}

	return orderStateOf(o), nil
}
