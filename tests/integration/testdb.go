// Package integration runs the back office against real PostgreSQL and Redis
// containers started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stationery/backoffice/internal/infrastructure/migration"
	"github.com/stationery/backoffice/internal/infrastructure/persistence"
	"github.com/stationery/backoffice/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestDB is a migrated PostgreSQL database in its own container
type TestDB struct {
	DB  *gorm.DB
	DSN string

	database  *persistence.Database
	container testcontainers.Container
}

// NewTestDB starts PostgreSQL, applies the embedded migrations and opens a pool.
// Everything is torn down when the test finishes.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("backoffice_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	applyMigrations(t, dsn)

	database, err := persistence.Open(gormpostgres.Open(dsn))
	require.NoError(t, err)
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = database.Close() })

	return &TestDB{DB: database.DB, DSN: dsn, database: database, container: container}
}

// Ping checks the pool, satisfying the readiness probe
func (tdb *TestDB) Ping(ctx context.Context) error {
	return tdb.database.Ping(ctx)
}

// applyMigrations runs the embedded migrations on a throwaway connection
func applyMigrations(t *testing.T, dsn string) {
	t.Helper()
	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	m, err := migration.NewFromFS(sqlDB, migrations.FS, ".", zap.NewNop())
	require.NoError(t, err)
	defer m.Close()
	require.NoError(t, m.Up())

	version, dirty, err := m.Version()
	require.NoError(t, err)
	require.False(t, dirty)
	require.NotZero(t, version)
}
