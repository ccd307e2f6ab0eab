package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_IsIdempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// OpenDB already migrated once; running again must be a no-op.
	require.NoError(t, Migrate(database))

	for _, table := range []string{"scopes", "work_items", "dependencies"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_ActivePairIndexBlocksDuplicates(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	mustExec := func(query string, args ...any) {
		t.Helper()
		_, err := database.Exec(query, args...)
		require.NoError(t, err)
	}

	mustExec(`INSERT INTO scopes (id, name, created_at, updated_at) VALUES ('s1', 'Scope', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	for _, id := range []string{"a", "b"} {
		mustExec(`INSERT INTO work_items (id, scope_id, title, status, created_at, updated_at)
			VALUES (?, 's1', ?, 'active', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`, id, id)
	}

	insertDep := func(id string, active int) error {
		_, err := database.Exec(`INSERT INTO dependencies (id, source_id, target_id, state, health, is_active, created_at, updated_at)
			VALUES (?, 'a', 'b', 'in_progress', 'at_risk', ?, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`, id, active)
		return err
	}

	require.NoError(t, insertDep("d1", 1))
	assert.Error(t, insertDep("d2", 1), "second active edge for the same pair must be rejected")
	assert.NoError(t, insertDep("d3", 0), "removed edges are history and don't collide")
}
