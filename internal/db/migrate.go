package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent and re-run on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scopes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_items (
		id TEXT PRIMARY KEY,
		scope_id TEXT NOT NULL REFERENCES scopes(id) ON DELETE CASCADE,
		parent_id TEXT REFERENCES work_items(id) ON DELETE CASCADE,
		order_index INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('proposed', 'active', 'done', 'removed')),
		effort INTEGER,
		created_at TEXT NOT NULL,
		done_at TEXT,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_items_scope ON work_items(scope_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_parent ON work_items(parent_id)`,

	`CREATE TABLE IF NOT EXISTS dependencies (
		id TEXT PRIMARY KEY,
		source_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		target_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		state TEXT NOT NULL,
		health TEXT NOT NULL,
		source_planned_on TEXT,
		target_planned_on TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		removed_on TEXT,
		removed_by_id TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK (source_id <> target_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dependencies_source ON dependencies(source_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_target ON dependencies(target_id)`,

	// One active edge per ordered pair; removed edges stay as history.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_dependencies_active_pair
		ON dependencies(source_id, target_id) WHERE is_active = 1`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
