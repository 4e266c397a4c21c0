package commands

import (
	"context"
	"fmt"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/errs"
)

// orderMutation changes a loaded order in memory and reports whether anything changed.
type orderMutation func(ctx context.Context, o *order.Order, now time.Time) (changed bool, err error)

// mutateOrder is the single read-modify-write path for existing orders.
//
// The order is loaded, optionally checked against the version the caller
// observed, mutated and written back with a compare-and-swap on the loaded
// version. Two writers racing on the same order therefore produce exactly one
// success; the loser gets errs.ErrVersionConflict and nothing is retried here.
// Writers on different orders never touch the same row and proceed in parallel.
//
// A mutation reporting changed=false is not written and commits nothing, so no
// event leaves the unit of work.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	expectedVersion *int64,
	mutate orderMutation,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if expectedVersion != nil {
		if err = o.CheckVersion(*expectedVersion); err != nil {
			return nil, err
		}
	}

	changed, err := mutate(ctx, o, time.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func validateExpectedVersion(expectedVersion *int64) error {
	if expectedVersion != nil && *expectedVersion < 1 {
		return errs.NewVersionIsInvalidError("expectedVersion", fmt.Errorf("%d is less than 1", *expectedVersion))
	}
	return nil
}

func copyVersion(expectedVersion *int64) *int64 {
	if expectedVersion == nil {
		return nil
	}
	v := *expectedVersion
	return &v
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
