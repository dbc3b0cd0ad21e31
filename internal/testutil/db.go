// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/kruger-gateway/internal/database"
	"github.com/iliyamo/kruger-gateway/internal/logging"
)

// NewDB opens a migrated SQLite database in a per-test temporary directory.
// The connection is closed when the test ends.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	logging.Init(logging.Config{Level: "disabled"})

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(database.DriverSQLite, database.SQLiteDSN(path))
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.RunMigrations(db, database.DriverSQLite), "migrate test database")
	return db
}

// NewSeededDB is NewDB plus the sample users, gates, sightings and
// accommodations. Passwords are hashed at the minimum bcrypt cost.
func NewSeededDB(t *testing.T) *sql.DB {
	t.Helper()
	db := NewDB(t)
	require.NoError(t, database.Seed(context.Background(), db, bcrypt.MinCost), "seed test database")
	return db
}
