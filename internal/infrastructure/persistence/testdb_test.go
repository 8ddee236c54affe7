package persistence

import (
	"testing"

	"github.com/stationery/backoffice/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// The pool is pinned to one connection so every query sees the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := Open(sqlite.Open(":memory:"))
	require.NoError(t, err)

	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.DB.AutoMigrate(models.AllModels()...))
	t.Cleanup(func() { _ = database.Close() })
	return database.DB
}
