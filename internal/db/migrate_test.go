package db_test

import (
	"testing"

	"github.com/rfaulkner/tracklane/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	for _, table := range []string{"projects", "tracks", "roadmap_items", "project_members", "view_state"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	// Re-running the full migration set against an already-migrated
	// database must not fail.
	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))
}

func TestMigrate_ForeignKeysEnforced(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(
		`INSERT INTO tracks (id, project_id, name, created_at, updated_at)
		 VALUES ('t1', 'missing-project', 'Garden', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
	)
	require.Error(t, err, "track insert must fail without its project")
	assert.Contains(t, err.Error(), "FOREIGN KEY")
}

func TestMigrate_StatusConstraint(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(
		`INSERT INTO projects (id, name, status, created_at, updated_at)
		 VALUES ('p1', 'Home', 'paused', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
	)
	require.Error(t, err, "unknown project status must be rejected")
}
