package postgres

import (
	"context"
	"embed"
	"fmt"
	"io"
	"log"
	"time"

	"fueldelivery/internal/adapters/out/postgres/accountrepo"
	"fueldelivery/internal/adapters/out/postgres/messagerepo"
	"fueldelivery/internal/adapters/out/postgres/orderrepo"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Options selects and tunes the database connection.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// PostgresDSN builds a key/value connection string for the pgx driver.
func PostgresDSN(host, port, user, password, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode,
	)
}

// Open connects with the configured driver. SQLite is limited to a single
// connection so that transactions serialize instead of failing with
// "database is locked".
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverPostgres, "":
		if opts.DSN == "" {
			return nil, fmt.Errorf("database DSN is required")
		}
		dialector = postgres.New(postgres.Config{
			DSN:                  opts.DSN,
			PreferSimpleProtocol: true,
		})
	case DriverSQLite:
		dsn := opts.DSN
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			log.New(io.Discard, "", log.LstdFlags),
			gormlogger.Config{LogLevel: gormlogger.Silent},
		),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}

	if opts.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
		return conn, nil
	}

	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	return conn, nil
}

// Migrate brings the schema up to date. PostgreSQL runs the embedded goose
// migrations; SQLite, used for local runs and tests, is auto-migrated from
// the DTOs.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() == DriverSQLite {
		return AutoMigrate(db)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// AutoMigrate creates every table this service reads or writes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accountrepo.UserDTO{},
		&accountrepo.StationDTO{},
		&accountrepo.FuelTypeDTO{},
		&orderrepo.OrderDTO{},
		&messagerepo.MessageDTO{},
	)
}
