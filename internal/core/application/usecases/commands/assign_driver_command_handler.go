package commands

import (
	"context"
	"time"

	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/core/ports"
	"fueldelivery/internal/pkg/errs"
)

// AssignDriverCommandHandler assigns drivers under the same optimistic
// version check as status transitions.
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
	directory  ports.AccountDirectory
}

func NewAssignDriverCommandHandler(uowFactory OrderUoWFactory, directory ports.AccountDirectory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
	}
}

func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (OrderDetails, error) {
	if err := cmd.Validate(); err != nil {
		return OrderDetails{}, err
	}

	exists, err := h.directory.UserExists(ctx, cmd.DriverID())
	if err != nil {
		return OrderDetails{}, err
	}
	if !exists {
		return OrderDetails{}, errs.NewObjectNotFoundError("driver", cmd.DriverID())
	}

	o, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), cmd.ExpectedVersion(),
		func(_ context.Context, o *order.Order, now time.Time) (bool, error) {
			return o.AssignDriver(cmd.DriverID(), now)
		},
	)
	if err != nil {
		return OrderDetails{}, err
	}

	return orderDetailsOf(o), nil
}
