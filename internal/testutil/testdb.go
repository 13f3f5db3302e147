package testutil

import (
	"database/sql"
	"testing"

	"github.com/rfaulkner/tracklane/internal/db"
)

// NewTestDB opens a migrated in-memory SQLite database that closes when
// the test finishes. Each call gets an isolated database, so repository
// and service tests never share state.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW wraps a test database in a real UnitOfWork.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
