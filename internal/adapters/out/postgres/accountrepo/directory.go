package accountrepo

import (
	"context"
	"errors"

	"fueldelivery/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAccountDirectory answers existence and ownership questions straight
// from the account tables.
type GormAccountDirectory struct {
	db *gorm.DB
}

func NewGormAccountDirectory(db *gorm.DB) *GormAccountDirectory {
	return &GormAccountDirectory{db: db}
}

func (d *GormAccountDirectory) UserExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return d.exists(ctx, &UserDTO{}, id)
}

func (d *GormAccountDirectory) StationExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return d.exists(ctx, &StationDTO{}, id)
}

func (d *GormAccountDirectory) FuelTypeExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return d.exists(ctx, &FuelTypeDTO{}, id)
}

// StationOwner returns nil for an unknown station or one without an owner.
func (d *GormAccountDirectory) StationOwner(ctx context.Context, stationID kernel.UUID) (*kernel.UUID, error) {
	var station StationDTO
	err := d.db.WithContext(ctx).Select("id", "owner_id").Take(&station, "id = ?", stationID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if station.OwnerID == nil {
		return nil, nil
	}

	owner, err := kernel.UUIDFromBytes(station.OwnerID[:])
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (d *GormAccountDirectory) exists(ctx context.Context, model any, id kernel.UUID) (bool, error) {
	if id.Validate() != nil {
		return false, nil
	}

	var count int64
	err := d.db.WithContext(ctx).Model(model).Where("id = ?", id.Bytes()).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
