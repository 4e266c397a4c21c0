package order

import (
	"errors"
	"fmt"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Spec carries the customer-supplied part of an order.
type Spec struct {
	UserID     kernel.UUID
	StationID  kernel.UUID
	DriverID   *kernel.UUID
	FuelTypeID kernel.UUID
	Quantity   decimal.Decimal
	TotalCost  decimal.Decimal
	Location   kernel.GeoPoint
	Phone      kernel.Phone
}

// Order is the aggregate root of a fuel delivery.
//
// Order follows these invariants:
//   - Must have valid identifiers for customer, station and fuel type
//   - Quantity is strictly positive and total cost is never negative
//   - Status only moves along the edges accepted by Transition
//   - Version starts at 1 and grows by exactly one per accepted mutation
//
// Mutations change the in-memory aggregate only. Whether they win against
// concurrent writers is decided by the repository, which compares BaseVersion
// against the stored version in the same statement that writes.
type Order struct {
	kernel.EventRecorder

	id         kernel.UUID
	userID     kernel.UUID
	stationID  kernel.UUID
	driverID   *kernel.UUID
	fuelTypeID kernel.UUID
	quantity   decimal.Decimal
	totalCost  decimal.Decimal
	location   kernel.GeoPoint
	phone      kernel.Phone
	status     Status

	// version is the current revision; baseVersion is the revision the
	// aggregate was loaded at and is what the next write is conditioned on.
	version     int64
	baseVersion int64
	deleted     bool

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder places a new order in PENDING status at version 1 and records Placed.
//
// Example:
//
//	location, _ := kernel.NewGeoPoint(27.7172, 85.3240, "Thamel, Kathmandu")
//	phone, _ := kernel.NewPhone("+9779800000000")
//	o, err := order.NewOrder(kernel.NewUUID(), order.Spec{
//	    UserID: userID, StationID: stationID, FuelTypeID: petrolID,
//	    Quantity: decimal.NewFromInt(20), TotalCost: decimal.NewFromInt(3500),
//	    Location: location, Phone: phone,
//	}, time.Now())
func NewOrder(id kernel.UUID, spec Spec, now time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		version:       1,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSpec(spec),
	); err != nil {
		return nil, err
	}

	o.Record(Placed{
		OrderID:   o.id,
		UserID:    o.userID,
		StationID: o.stationID,
		Status:    o.status,
		Version:   o.version,
		PlacedAt:  o.createdAt,
	})
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. No events are recorded
// and the loaded version becomes the base version for the next write.
func RestoreOrder(
	id kernel.UUID,
	spec Spec,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
		createdAt:     createdAt.UTC(),
		updatedAt:     updatedAt.UTC(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setSpec(spec),
		status.Validate(),
		validateVersion(version),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.version = version
	o.baseVersion = version
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) UserID() kernel.UUID        { return o.userID }
func (o *Order) StationID() kernel.UUID     { return o.stationID }
func (o *Order) FuelTypeID() kernel.UUID    { return o.fuelTypeID }
func (o *Order) Quantity() decimal.Decimal  { return o.quantity }
func (o *Order) TotalCost() decimal.Decimal { return o.totalCost }
func (o *Order) Location() kernel.GeoPoint  { return o.location }
func (o *Order) Phone() kernel.Phone        { return o.phone }
func (o *Order) Status() Status             { return o.status }
func (o *Order) Version() int64             { return o.version }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }
func (o *Order) IsDeleted() bool            { return o.deleted }

// Driver returns the assigned driver's ID, or nil while unassigned.
func (o *Order) Driver() *kernel.UUID {
	if o.driverID == nil {
		return nil
	}
	id := *o.driverID
	return &id
}

// BaseVersion is the version the aggregate was loaded or last persisted at.
// Zero means the order has never been stored.
func (o *Order) BaseVersion() int64 {
	return o.baseVersion
}

// IsDirty reports whether there are mutations not yet persisted.
func (o *Order) IsDirty() bool {
	return o.version != o.baseVersion
}

// MarkPersisted is called by the repository after a successful write.
func (o *Order) MarkPersisted() {
	o.baseVersion = o.version
}

// IsParticipant reports whether userID is the customer or the assigned driver.
// Station ownership is resolved outside the aggregate.
func (o *Order) IsParticipant(userID kernel.UUID) bool {
	if o.userID.IsEqual(userID) {
		return true
	}
	return o.driverID != nil && o.driverID.IsEqual(userID)
}

// CheckVersion fails with VersionConflictError when the caller observed a
// different revision than the one currently held.
func (o *Order) CheckVersion(expected int64) error {
	if expected != o.version {
		return errs.NewVersionConflictErrorWithCause(
			"order", o.id, expected,
			fmt.Errorf("current version is %d", o.version),
		)
	}
	return nil
}

// ChangeStatus applies a lifecycle transition.
//
// Re-applying the current non-terminal status returns changed=false and leaves
// version, timestamps and events untouched. Any accepted change bumps the
// version and records StatusChanged.
func (o *Order) ChangeStatus(requested Status, now time.Time) (changed bool, err error) {
	if err := o.ensureActive(); err != nil {
		return false, err
	}

	next, err := Transition(o.status, requested)
	if err != nil {
		return false, err
	}
	if next == o.status {
		return false, nil
	}

	from := o.status
	o.status = next
	o.touch(now)

	o.Record(StatusChanged{
		OrderID:   o.id,
		UserID:    o.userID,
		StationID: o.stationID,
		DriverID:  o.Driver(),
		From:      from,
		To:        next,
		Version:   o.version,
		UpdatedAt: o.updatedAt,
	})
	return true, nil
}

// Cancel is ChangeStatus(Cancelled). Cancelling an already cancelled order fails.
func (o *Order) Cancel(now time.Time) error {
	_, err := o.ChangeStatus(Cancelled, now)
	return err
}

// AssignDriver sets or replaces the driver while the order is PENDING or
// IN_PROGRESS. Assigning the same driver again is a no-op.
func (o *Order) AssignDriver(driverID kernel.UUID, now time.Time) (changed bool, err error) {
	if err := o.ensureActive(); err != nil {
		return false, err
	}
	if err := driverID.Validate(); err != nil {
		return false, err
	}
	if err := o.status.ValidateCanAssignDriver(); err != nil {
		return false, err
	}
	if o.driverID != nil && o.driverID.IsEqual(driverID) {
		return false, nil
	}

	o.driverID = &driverID
	o.touch(now)

	o.Record(DriverAssigned{
		OrderID:   o.id,
		UserID:    o.userID,
		StationID: o.stationID,
		DriverID:  driverID,
		Status:    o.status,
		Version:   o.version,
		UpdatedAt: o.updatedAt,
	})
	return true, nil
}

// MarkDeleted soft-deletes the order. The version is bumped so that a writer
// holding the previous revision loses its compare-and-swap.
func (o *Order) MarkDeleted(now time.Time) error {
	if err := o.ensureActive(); err != nil {
		return err
	}
	o.deleted = true
	o.touch(now)
	return nil
}

func (o *Order) ensureActive() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.deleted {
		return errs.NewObjectNotFoundError("order", o.id)
	}
	return nil
}

func (o *Order) touch(now time.Time) {
	o.version++
	now = now.UTC()
	// Keep updatedAt monotonic even if the clock steps back.
	if now.Before(o.updatedAt) {
		now = o.updatedAt
	}
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSpec(spec Spec) error {
	if err := errors.Join(
		spec.UserID.Validate(),
		spec.StationID.Validate(),
		spec.FuelTypeID.Validate(),
		validateDriver(spec.DriverID),
		validateQuantity(spec.Quantity),
		validateTotalCost(spec.TotalCost),
		spec.Location.Validate(),
		spec.Phone.Validate(),
	); err != nil {
		return err
	}

	o.userID = spec.UserID
	o.stationID = spec.StationID
	o.fuelTypeID = spec.FuelTypeID
	o.quantity = spec.Quantity
	o.totalCost = spec.TotalCost
	o.location = spec.Location
	o.phone = spec.Phone
	if spec.DriverID != nil {
		id := *spec.DriverID
		o.driverID = &id
	}
	return nil
}

func validateDriver(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	return driverID.Validate()
}

func validateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%s is not greater than 0", q))
	}
	return nil
}

func validateTotalCost(c decimal.Decimal) error {
	if c.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total cost is invalid", fmt.Errorf("%s is negative", c))
	}
	return nil
}

func validateVersion(v int64) error {
	if v < 1 {
		return errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is less than 1", v))
	}
	return nil
}
