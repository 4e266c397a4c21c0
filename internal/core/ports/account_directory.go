package ports

import (
	"context"

	"fueldelivery/internal/core/domain/model/kernel"
)

// AccountDirectory answers existence questions about accounts owned by
// another service. A missing record is (false, nil), never an error.
type AccountDirectory interface {
	UserExists(ctx context.Context, id kernel.UUID) (bool, error)
	StationExists(ctx context.Context, id kernel.UUID) (bool, error)
	FuelTypeExists(ctx context.Context, id kernel.UUID) (bool, error)

	// StationOwner returns the user owning the station, or nil when the
	// station is unknown or has no owner.
	StationOwner(ctx context.Context, stationID kernel.UUID) (*kernel.UUID, error)
}
