package commands

import (
	"errors"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand soft-deletes an order.
type DeleteOrderCommand struct {
	orderID         kernel.UUID
	expectedVersion *int64

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID kernel.UUID, expectedVersion *int64) (DeleteOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		validateExpectedVersion(expectedVersion),
	); err != nil {
		return DeleteOrderCommand{}, err
	}

	return DeleteOrderCommand{
		orderID:         orderID,
		expectedVersion: copyVersion(expectedVersion),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c DeleteOrderCommand) ExpectedVersion() *int64 { return copyVersion(c.expectedVersion) }
