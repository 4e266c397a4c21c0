package commands

import (
	"errors"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand requests CANCELLED for an order.
type CancelOrderCommand struct {
	inner ChangeOrderStatusCommand
	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, expectedVersion *int64, actorID *kernel.UUID) (CancelOrderCommand, error) {
	inner, err := NewChangeOrderStatusCommand(orderID, order.Cancelled, expectedVersion, actorID)
	if err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{inner: inner, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.inner.OrderID()
}
