// Package orderrepo persists order aggregates with GORM. Every update is a
// compare-and-swap on the version column.
package orderrepo

import (
	"time"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	StationID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	DriverID   *uuid.UUID      `gorm:"type:uuid;index"`
	FuelTypeID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	TotalCost  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Location   LocationDTO     `gorm:"embedded;embeddedPrefix:location_"`
	Phone      string          `gorm:"size:16;not null"`
	Status     string          `gorm:"size:16;not null;index"`
	Version    int64           `gorm:"not null"`
	CreatedAt  time.Time       `gorm:"autoCreateTime:false;not null"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime:false;not null"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO is the delivery point embedded in the orders table.
type LocationDTO struct {
	Latitude  float64
	Longitude float64
	Address   string `gorm:"size:255"`
}

func fromDomain(o *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := o.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	dto := OrderDTO{
		ID:         o.ID().Bytes(),
		UserID:     o.UserID().Bytes(),
		StationID:  o.StationID().Bytes(),
		DriverID:   driverID,
		FuelTypeID: o.FuelTypeID().Bytes(),
		Quantity:   o.Quantity(),
		TotalCost:  o.TotalCost(),
		Location: LocationDTO{
			Latitude:  o.Location().Latitude(),
			Longitude: o.Location().Longitude(),
			Address:   o.Location().Address(),
		},
		Phone:     o.Phone().String(),
		Status:    o.Status().String(),
		Version:   o.Version(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
	if o.IsDeleted() {
		dto.DeletedAt = gorm.DeletedAt{Time: o.UpdatedAt(), Valid: true}
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	spec, err := specOf(dto)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, spec, status, dto.Version, dto.CreatedAt, dto.UpdatedAt)
}

func specOf(dto OrderDTO) (order.Spec, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return order.Spec{}, err
	}
	stationID, err := kernel.UUIDFromBytes(dto.StationID[:])
	if err != nil {
		return order.Spec{}, err
	}
	fuelTypeID, err := kernel.UUIDFromBytes(dto.FuelTypeID[:])
	if err != nil {
		return order.Spec{}, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		id, driverErr := kernel.UUIDFromBytes(dto.DriverID[:])
		if driverErr != nil {
			return order.Spec{}, driverErr
		}
		driverID = &id
	}

	location, err := kernel.NewGeoPoint(dto.Location.Latitude, dto.Location.Longitude, dto.Location.Address)
	if err != nil {
		return order.Spec{}, err
	}
	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return order.Spec{}, err
	}

	return order.Spec{
		UserID:     userID,
		StationID:  stationID,
		DriverID:   driverID,
		FuelTypeID: fuelTypeID,
		Quantity:   dto.Quantity,
		TotalCost:  dto.TotalCost,
		Location:   location,
		Phone:      phone,
	}, nil
}
