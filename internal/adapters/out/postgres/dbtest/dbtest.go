// Package dbtest provides database fixtures for tests: an isolated in-memory
// SQLite database with the full schema, and a seeded set of accounts.
package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fueldelivery/internal/adapters/out/postgres"
	"fueldelivery/internal/adapters/out/postgres/accountrepo"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Accounts are the identities seeded by SeedAccounts.
type Accounts struct {
	Customer kernel.UUID
	Driver   kernel.UUID
	Owner    kernel.UUID
	Stranger kernel.UUID
	Station  kernel.UUID
	FuelType kernel.UUID
}

// OpenSQLite returns a migrated in-memory database private to t.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := postgres.Open(postgres.Options{
		Driver: postgres.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(context.Background(), db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedAccounts inserts a customer, a driver, a station owner, an unrelated
// user, one station and one fuel type.
func SeedAccounts(t testing.TB, db *gorm.DB) Accounts {
	t.Helper()

	a := Accounts{
		Customer: kernel.NewUUID(),
		Driver:   kernel.NewUUID(),
		Owner:    kernel.NewUUID(),
		Stranger: kernel.NewUUID(),
		Station:  kernel.NewUUID(),
		FuelType: kernel.NewUUID(),
	}

	users := []accountrepo.UserDTO{
		{ID: a.Customer.Bytes(), Name: "Customer", Role: "user"},
		{ID: a.Driver.Bytes(), Name: "Driver", Role: "driver"},
		{ID: a.Owner.Bytes(), Name: "Owner", Role: "station"},
		{ID: a.Stranger.Bytes(), Name: "Stranger", Role: "user"},
	}
	require.NoError(t, db.Create(&users).Error)

	owner := a.Owner.Bytes()
	require.NoError(t, db.Create(&accountrepo.StationDTO{
		ID:      a.Station.Bytes(),
		Name:    "Ring Road Fuel",
		OwnerID: &owner,
	}).Error)
	require.NoError(t, db.Create(&accountrepo.FuelTypeDTO{
		ID:    a.FuelType.Bytes(),
		Name:  "petrol-" + a.FuelType.String()[:8],
		Price: decimal.NewFromInt(175),
	}).Error)

	return a
}

// OrderSpec returns a valid order spec referencing the seeded accounts.
func (a Accounts) OrderSpec(t testing.TB) order.Spec {
	t.Helper()

	location, err := kernel.NewGeoPoint(27.7172, 85.3240, "Thamel, Kathmandu")
	require.NoError(t, err)
	phone, err := kernel.NewPhone("+9779800000000")
	require.NoError(t, err)

	return order.Spec{
		UserID:     a.Customer,
		StationID:  a.Station,
		FuelTypeID: a.FuelType,
		Quantity:   decimal.NewFromInt(10),
		TotalCost:  decimal.NewFromInt(500),
		Location:   location,
		Phone:      phone,
	}
}

// NewOrder builds an unsaved PENDING order placed at now.
func (a Accounts) NewOrder(t testing.TB, now time.Time) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), a.OrderSpec(t), now)
	require.NoError(t, err)
	return o
}
