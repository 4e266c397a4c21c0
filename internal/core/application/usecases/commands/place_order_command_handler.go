package commands

import (
	"context"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/core/ports"
	"fueldelivery/internal/pkg/errs"
)

// PlaceOrderCommandHandler creates PENDING orders after checking that every
// referenced account exists.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, directory)
//	details, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // dangling user, station, fuel type or driver
//	}
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	directory  ports.AccountDirectory
}

func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory, directory ports.AccountDirectory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
	}
}

// Handle validates references, persists the order at version 1 and commits.
// The Placed event is published by the unit of work after commit.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (OrderDetails, error) {
	if err := cmd.Validate(); err != nil {
		return OrderDetails{}, err
	}

	spec := cmd.Spec()
	if err := h.checkReferences(ctx, spec); err != nil {
		return OrderDetails{}, err
	}

	o, err := order.NewOrder(cmd.OrderID(), spec, time.Now())
	if err != nil {
		return OrderDetails{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return OrderDetails{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return OrderDetails{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderDetails{}, err
	}

	return orderDetailsOf(o), nil
}

type referenceCheck struct {
	param  string
	id     kernel.UUID
	exists func(context.Context, kernel.UUID) (bool, error)
}

func (h PlaceOrderCommandHandler) checkReferences(ctx context.Context, spec order.Spec) error {
	checks := []referenceCheck{
		{"user", spec.UserID, h.directory.UserExists},
		{"station", spec.StationID, h.directory.StationExists},
		{"fuelType", spec.FuelTypeID, h.directory.FuelTypeExists},
	}
	if spec.DriverID != nil {
		checks = append(checks, referenceCheck{"driver", *spec.DriverID, h.directory.UserExists})
	}

	return runReferenceChecks(ctx, checks)
}

func runReferenceChecks(ctx context.Context, checks []referenceCheck) error {
	for _, check := range checks {
		ok, err := check.exists(ctx, check.id)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NewObjectNotFoundError(check.param, check.id)
		}
	}
	return nil
}
