// Package accountrepo reads the account tables owned by the surrounding
// platform (users, fuel stations, fuel types). This service never writes them
// outside of tests and seeding.
package accountrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:120;not null"`
	Phone     string    `gorm:"size:16"`
	Role      string    `gorm:"size:16;not null"`
	CreatedAt time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

type StationDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"size:120;not null"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
}

func (StationDTO) TableName() string {
	return "fuel_stations"
}

type FuelTypeDTO struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name  string          `gorm:"size:60;not null;uniqueIndex"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (FuelTypeDTO) TableName() string {
	return "fuel_types"
}
