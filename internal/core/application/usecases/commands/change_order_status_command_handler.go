package commands

import (
	"context"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/core/domain/services"
	"fueldelivery/internal/core/ports"
)

// ChangeOrderStatusCommandHandler runs a status transition through the
// lifecycle rules and the versioned write path.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, directory)
//	cmd, _ := NewChangeOrderStatusCommand(orderID, order.InProgress, &seenVersion, nil)
//	details, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrVersionConflict):
//	    // re-read and retry
//	case errors.Is(err, errs.ErrTransitionIsInvalid):
//	    // not allowed from the current status
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	directory  ports.AccountDirectory
	policy     services.OrderAccessPolicy
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	directory ports.AccountDirectory,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		policy:     services.NewOrderAccessPolicy(),
	}
}

// Handle applies the transition. Requesting the current active status
// returns the order unchanged without a write.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (OrderDetails, error) {
	if err := cmd.Validate(); err != nil {
		return OrderDetails{}, err
	}

	owner, err := stationOwnerForActor(ctx, h.uowFactory, h.directory, cmd.OrderID(), cmd.ActorID())
	if err != nil {
		return OrderDetails{}, err
	}

	o, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), cmd.ExpectedVersion(),
		func(_ context.Context, o *order.Order, now time.Time) (bool, error) {
			if actor := cmd.ActorID(); actor != nil {
				if err := h.policy.Authorize(o, *actor, owner); err != nil {
					return false, err
				}
			}
			return o.ChangeStatus(cmd.Status(), now)
		},
	)
	if err != nil {
		return OrderDetails{}, err
	}

	return orderDetailsOf(o), nil
}

// stationOwnerForActor resolves the station owner before the write
// transaction opens, so no directory query runs while the order row is held.
// Participants need no lookup. An order's station never changes, so the
// answer stays valid for the write that follows.
func stationOwnerForActor(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	directory ports.AccountDirectory,
	orderID kernel.UUID,
	actorID *kernel.UUID,
) (*kernel.UUID, error) {
	if actorID == nil {
		return nil, nil
	}

	o, err := uowFactory.Create().OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.IsParticipant(*actorID) {
		return nil, nil
	}

	return directory.StationOwner(ctx, o.StationID())
}
