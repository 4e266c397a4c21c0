package commands

import (
	"errors"
	"fmt"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/errs"
	"fueldelivery/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a customer placing a new fuel order.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), order.Spec{
//	    UserID: customerID, StationID: stationID, FuelTypeID: dieselID,
//	    Quantity: decimal.NewFromInt(10), TotalCost: decimal.NewFromInt(500),
//	    Location: location, Phone: phone,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	details, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	spec    order.Spec

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the order id and the customer-supplied fields.
func NewPlaceOrderCommand(orderID kernel.UUID, spec order.Spec) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSpec(spec),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) Spec() order.Spec {
	spec := c.spec
	spec.DriverID = copyUUID(c.spec.DriverID)
	return spec
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setSpec(spec order.Spec) error {
	if err := errors.Join(
		required("userId", spec.UserID),
		required("stationId", spec.StationID),
		required("fuelTypeId", spec.FuelTypeID),
		spec.Location.Validate(),
		spec.Phone.Validate(),
	); err != nil {
		return err
	}
	if !spec.Quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is not greater than 0", spec.Quantity))
	}
	if spec.TotalCost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("totalCost", fmt.Errorf("%s is negative", spec.TotalCost))
	}

	c.spec = spec
	c.spec.DriverID = copyUUID(spec.DriverID)
	return nil
}

func required(param string, id kernel.UUID) error {
	if id.Validate() != nil {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
