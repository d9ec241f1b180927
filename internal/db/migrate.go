package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS trial_users (
		id            TEXT PRIMARY KEY,
		access_code   TEXT NOT NULL UNIQUE,
		display_name  TEXT NOT NULL DEFAULT '',
		is_active     INTEGER NOT NULL DEFAULT 1,
		last_login_at TEXT,
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS entries (
		id            TEXT PRIMARY KEY,
		trial_user_id TEXT NOT NULL REFERENCES trial_users(id) ON DELETE CASCADE,
		day           INTEGER NOT NULL CHECK(day >= 1 AND day <= 14),
		title         TEXT NOT NULL DEFAULT '',
		question      TEXT NOT NULL DEFAULT '',
		user_text     TEXT NOT NULL DEFAULT '',
		ai_text       TEXT NOT NULL DEFAULT '',
		mode          TEXT NOT NULL DEFAULT 'mirror'
		              CHECK(mode IN ('mirror','synthesis')),
		is_completed  INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	// One entry per user per day; upserts resolve against this key.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_user_day ON entries(trial_user_id, day)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_user ON entries(trial_user_id)`,

	`CREATE TABLE IF NOT EXISTS survey_responses (
		id             TEXT PRIMARY KEY,
		trial_user_id  TEXT NOT NULL REFERENCES trial_users(id) ON DELETE CASCADE,
		access_code    TEXT NOT NULL DEFAULT '',
		definition     TEXT NOT NULL DEFAULT '',
		thought_change TEXT NOT NULL DEFAULT '',
		would_miss     TEXT NOT NULL DEFAULT '',
		answers        TEXT NOT NULL DEFAULT '{}',
		submitted_at   TEXT NOT NULL
	)`,

	// The API rejects duplicates before inserting; the index turns the
	// check-then-insert race into a storage error instead of a second row.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_survey_user ON survey_responses(trial_user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_survey_submitted ON survey_responses(submitted_at)`,
}
