package postgres

import (
	"embed"
	"errors"
	"fmt"

	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/adapters/out/postgres/vehiclerepo"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrUnknownDriver is returned by Open for anything but postgres or sqlite.
var ErrUnknownDriver = errors.New("unknown database driver")

// Options selects and addresses the database.
type Options struct {
	Driver string
	// DSN is a libpq connection string for postgres or a file path for sqlite.
	DSN string
}

// Open connects with error translation enabled, so unique violations come back as gorm.ErrDuplicatedKey.
func Open(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverPostgres:
		dialector = gormpg.Open(opts.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}
	return db, nil
}

// Migrate brings the schema up to date. Postgres runs the embedded SQL migrations;
// sqlite, used for development and tests, is auto-migrated from the DTOs.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() != DriverPostgres {
		return AutoMigrate(db)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, DriverPostgres, driver)
	if err != nil {
		return fmt.Errorf("migrator: %w", err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// AutoMigrate creates the tables from the DTO definitions.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&vehiclerepo.VehicleDTO{},
		&locationrepo.DriverLocationDTO{},
	)
}
