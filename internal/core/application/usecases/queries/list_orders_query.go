package queries

import (
	"errors"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via one of the NewList*OrdersQuery constructors",
)

type ordersScope int

const (
	scopeAll ordersScope = iota
	scopeUser
	scopeStation
)

// ListOrdersQuery lists live orders, newest first, for a customer, a station
// or everybody, optionally narrowed to one status.
type ListOrdersQuery struct {
	scope   ordersScope
	ownerID kernel.UUID
	status  *order.Status

	guard guard.ConstructorGuard
}

// NewListUserOrdersQuery lists the orders a customer placed.
func NewListUserOrdersQuery(userID kernel.UUID, status *order.Status) (ListOrdersQuery, error) {
	return newListOrdersQuery(scopeUser, userID, status)
}

// NewListStationOrdersQuery lists the orders a station fulfils.
func NewListStationOrdersQuery(stationID kernel.UUID, status *order.Status) (ListOrdersQuery, error) {
	return newListOrdersQuery(scopeStation, stationID, status)
}

// NewListAllOrdersQuery lists every live order.
func NewListAllOrdersQuery(status *order.Status) (ListOrdersQuery, error) {
	if err := validateStatusFilter(status); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{scope: scopeAll, status: copyStatus(status), guard: guard.NewConstructorGuard()}, nil
}

func newListOrdersQuery(scope ordersScope, ownerID kernel.UUID, status *order.Status) (ListOrdersQuery, error) {
	if err := errors.Join(ownerID.Validate(), validateStatusFilter(status)); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{
		scope:   scope,
		ownerID: ownerID,
		status:  copyStatus(status),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func validateStatusFilter(status *order.Status) error {
	if status == nil {
		return nil
	}
	return status.Validate()
}

func copyStatus(status *order.Status) *order.Status {
	if status == nil {
		return nil
	}
	s := *status
	return &s
}
