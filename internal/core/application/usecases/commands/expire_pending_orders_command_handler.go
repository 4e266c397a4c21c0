package commands

import (
	"context"
	"errors"
	"time"

	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/errs"
)

// ExpirePendingOrdersResult reports what one expiry run did.
type ExpirePendingOrdersResult struct {
	Cancelled int
	Skipped   int
}

// ExpirePendingOrdersCommandHandler cancels stale PENDING orders one by one,
// each through the versioned write path. An order that moved in the meantime
// (conflict, already transitioned, deleted) is skipped and picked up by a
// later run if it is still pending.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewExpirePendingOrdersCommandHandler(uowFactory OrderUoWFactory) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{uowFactory: uowFactory}
}

func (h ExpirePendingOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ExpirePendingOrdersCommand,
) (ExpirePendingOrdersResult, error) {
	var result ExpirePendingOrdersResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	cutoff := time.Now().Add(-cmd.TTL())
	stale, err := h.uowFactory.Create().OrderRepository().ListPendingPlacedBefore(ctx, cutoff, cmd.BatchSize())
	if err != nil {
		return result, err
	}

	for _, candidate := range stale {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		version := candidate.Version()
		_, err = mutateOrder(ctx, h.uowFactory, candidate.ID(), &version,
			func(_ context.Context, o *order.Order, now time.Time) (bool, error) {
				return o.ChangeStatus(order.Cancelled, now)
			},
		)
		switch {
		case err == nil:
			result.Cancelled++
		case isSkippable(err):
			result.Skipped++
		default:
			return result, err
		}
	}

	return result, nil
}

func isSkippable(err error) bool {
	return errors.Is(err, errs.ErrVersionConflict) ||
		errors.Is(err, errs.ErrTransitionIsInvalid) ||
		errors.Is(err, errs.ErrObjectNotFound)
}
