package dbtest

import (
	"context"
	"testing"
	"time"

	"fueldelivery/internal/adapters/out/postgres"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// StartPostgres runs a throwaway PostgreSQL container, applies the goose
// migrations and returns a connection. The container is terminated when t
// finishes. Tests are skipped when no container runtime is available.
func StartPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := postgres.Open(postgres.Options{Driver: postgres.DriverPostgres, DSN: dsn, MaxOpenConns: 10})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(ctx, db))

	return db
}

// Truncate empties every table written by the tests.
func Truncate(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Exec(
		"TRUNCATE TABLE ratings, payments, messages, orders, fuel_types, fuel_stations, users CASCADE",
	).Error)
}
