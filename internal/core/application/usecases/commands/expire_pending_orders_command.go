package commands

import (
	"errors"
	"fmt"
	"time"

	"fueldelivery/internal/pkg/errs"
	"fueldelivery/internal/pkg/guard"
)

var ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
	"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
)

// ExpirePendingOrdersCommand cancels orders that stayed PENDING longer than ttl.
type ExpirePendingOrdersCommand struct {
	ttl       time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpirePendingOrdersCommand(ttl time.Duration, batchSize int) (ExpirePendingOrdersCommand, error) {
	if ttl <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("ttl", fmt.Errorf("%s is not positive", ttl))
	}
	if batchSize <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("batchSize", fmt.Errorf("%d is not positive", batchSize))
	}

	return ExpirePendingOrdersCommand{
		ttl:       ttl,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

func (c ExpirePendingOrdersCommand) TTL() time.Duration { return c.ttl }
func (c ExpirePendingOrdersCommand) BatchSize() int     { return c.batchSize }
