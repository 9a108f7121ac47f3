// Package storetest opens throwaway databases for repository and query tests.
package storetest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// NopTracker satisfies the repositories' aggregate tracker.
type NopTracker struct{}

func (NopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// SQLite returns a migrated database in a file under t.TempDir.
func SQLite(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := postgres.Open(postgres.Options{
		Driver: postgres.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "dispatch.db") + "?_foreign_keys=on&_busy_timeout=5000",
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Postgres starts a disposable PostgreSQL container and returns its DSN.
// The container is terminated by the returned function.
func Postgres(ctx context.Context) (string, func() error, error) {
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
	if err != nil {
		return "", nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return "", nil, err
	}

	return dsn, func() error { return container.Terminate(context.Background()) }, nil
}
