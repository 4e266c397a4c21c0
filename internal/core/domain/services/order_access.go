package services

import (
	"fmt"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/errs"
)

// OrderAccessPolicy decides which identities participate in an order.
//
// Participants are the customer who placed the order, the assigned driver
// (if any) and the owner of the fuel station fulfilling it. Only participants
// may subscribe to the order's topic or change its status over a live
// connection.
//
// Example usage:
//
//	policy := services.NewOrderAccessPolicy()
//	owner, _ := directory.StationOwner(ctx, o.StationID())
//	if err := policy.Authorize(o, actorID, owner); err != nil {
//	    // errs.ErrAccessIsDenied
//	}
type OrderAccessPolicy struct{}

func NewOrderAccessPolicy() OrderAccessPolicy {
	return OrderAccessPolicy{}
}

// Authorize returns nil when actor participates in o.
// stationOwner may be nil when the station has no registered owner.
func (OrderAccessPolicy) Authorize(o *order.Order, actor kernel.UUID, stationOwner *kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if o.IsParticipant(actor) {
		return nil
	}
	if stationOwner != nil && stationOwner.IsEqual(actor) {
		return nil
	}
	return errs.NewAccessIsDeniedErrorWithCause(actor, "order:"+o.ID().String(),
		fmt.Errorf("not the customer, driver or station owner"))
}

// AuthorizeStation allows only the station owner to watch a station's orders.
func (OrderAccessPolicy) AuthorizeStation(stationID, actor kernel.UUID, stationOwner *kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if stationOwner != nil && stationOwner.IsEqual(actor) {
		return nil
	}
	return errs.NewAccessIsDeniedError(actor, "station:"+stationID.String())
}
