package commands

import (
	"errors"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests a lifecycle transition.
//
// expectedVersion, when set, is the version the caller last observed; the
// command fails with a version conflict if the order has moved since.
// actorID, when set, restricts the change to the order's participants; HTTP
// callers leave it nil and live connections always set it.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	status          order.Status
	expectedVersion *int64
	actorID         *kernel.UUID

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	expectedVersion *int64,
	actorID *kernel.UUID,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		status.Validate(),
		validateExpectedVersion(expectedVersion),
		validateActor(actorID),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.status = status
	cmd.expectedVersion = copyVersion(expectedVersion)
	cmd.actorID = copyUUID(actorID)
	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID    { return c.orderID }
func (c ChangeOrderStatusCommand) Status() order.Status    { return c.status }
func (c ChangeOrderStatusCommand) ExpectedVersion() *int64 { return copyVersion(c.expectedVersion) }
func (c ChangeOrderStatusCommand) ActorID() *kernel.UUID   { return copyUUID(c.actorID) }

func validateActor(actorID *kernel.UUID) error {
	if actorID == nil {
		return nil
	}
	return actorID.Validate()
}
