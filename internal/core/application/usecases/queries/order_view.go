// Package queries contains read operations. Handlers read straight from the
// database through GORM and never load aggregates.
package queries

import (
	"context"
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the read model of an order.
type OrderView struct {
	ID         kernel.UUID
	UserID     kernel.UUID
	StationID  kernel.UUID
	DriverID   *kernel.UUID
	FuelTypeID kernel.UUID
	Quantity   decimal.Decimal
	TotalCost  decimal.Decimal
	Latitude   float64
	Longitude  float64
	Address    string
	Phone      string
	Status     order.Status
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type orderRow struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	StationID         uuid.UUID
	DriverID          *uuid.UUID
	FuelTypeID        uuid.UUID
	Quantity          decimal.Decimal
	TotalCost         decimal.Decimal
	LocationLatitude  float64
	LocationLongitude float64
	LocationAddress   string
	Phone             string
	Status            string
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// liveOrders scopes a query to orders that were not soft-deleted.
func liveOrders(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).Table("orders").Where("deleted_at IS NULL")
}

func listOrders(tx *gorm.DB) ([]OrderView, error) {
	var rows []orderRow
	if err := tx.Order("created_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, err := row.toView()
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (r orderRow) toView() (OrderView, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderView{}, err
	}

	var driverID *kernel.UUID
	if r.DriverID != nil {
		id := kernel.UUID{}
		if id, err = kernel.UUIDFromBytes(r.DriverID[:]); err != nil {
			return OrderView{}, err
		}
		driverID = &id
	}

	ids := make([]kernel.UUID, 4)
	for i, raw := range []uuid.UUID{r.ID, r.UserID, r.StationID, r.FuelTypeID} {
		if ids[i], err = kernel.UUIDFromBytes(raw[:]); err != nil {
			return OrderView{}, err
		}
	}

	return OrderView{
		ID:         ids[0],
		UserID:     ids[1],
		StationID:  ids[2],
		DriverID:   driverID,
		FuelTypeID: ids[3],
		Quantity:   r.Quantity,
		TotalCost:  r.TotalCost,
		Latitude:   r.LocationLatitude,
		Longitude:  r.LocationLongitude,
		Address:    r.LocationAddress,
		Phone:      r.Phone,
		Status:     status,
		Version:    r.Version,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}, nil
}
