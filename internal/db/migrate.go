package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open; ALTER TABLE duplicates are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tracks (
		id                 TEXT PRIMARY KEY,
		project_id         TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id          TEXT REFERENCES tracks(id) ON DELETE CASCADE,
		name               TEXT NOT NULL,
		color              TEXT,
		order_index        INTEGER NOT NULL DEFAULT 0,
		category           TEXT NOT NULL DEFAULT 'main'
		                   CHECK(category IN ('main','side_project')),
		include_in_roadmap INTEGER NOT NULL DEFAULT 1,
		visibility         TEXT NOT NULL DEFAULT 'visible'
		                   CHECK(visibility IN ('visible','collapsed','hidden')),
		deleted_at         TEXT,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tracks_project ON tracks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tracks_parent ON tracks(parent_id)`,

	`CREATE TABLE IF NOT EXISTS roadmap_items (
		id          TEXT PRIMARY KEY,
		track_id    TEXT NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
		type        TEXT NOT NULL DEFAULT 'task'
		            CHECK(type IN ('task','event','milestone','goal','habit',
		                           'note','document','photo','grocery_list','review')),
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_date  TEXT,
		end_date    TEXT,
		status      TEXT NOT NULL DEFAULT 'not_started'
		            CHECK(status IN ('not_started','in_progress','blocked','on_hold','completed')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_items_track ON roadmap_items(track_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_status ON roadmap_items(status)`,
	`CREATE INDEX IF NOT EXISTS idx_items_start ON roadmap_items(start_date)`,

	`CREATE TABLE IF NOT EXISTS project_members (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT 'viewer'
		           CHECK(role IN ('owner','editor','viewer')),
		created_at TEXT NOT NULL,
		PRIMARY KEY (project_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS view_state (
		project_id    TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id       TEXT NOT NULL,
		collapsed_ids TEXT NOT NULL DEFAULT '',
		zoom          TEXT NOT NULL DEFAULT 'week'
		              CHECK(zoom IN ('day','week','month')),
		updated_at    TEXT NOT NULL,
		PRIMARY KEY (project_id, user_id)
	)`,
}
