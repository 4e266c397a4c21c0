package commands

import (
	"errors"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand puts a driver on an active order.
type AssignDriverCommand struct {
	orderID         kernel.UUID
	driverID        kernel.UUID
	expectedVersion *int64

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(orderID, driverID kernel.UUID, expectedVersion *int64) (AssignDriverCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		required("driverId", driverID),
		validateExpectedVersion(expectedVersion),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		orderID:         orderID,
		driverID:        driverID,
		expectedVersion: copyVersion(expectedVersion),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) OrderID() kernel.UUID    { return c.orderID }
func (c AssignDriverCommand) DriverID() kernel.UUID   { return c.driverID }
func (c AssignDriverCommand) ExpectedVersion() *int64 { return copyVersion(c.expectedVersion) }
