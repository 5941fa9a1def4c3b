package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshot_revisions (
		id TEXT PRIMARY KEY,
		snapshot_hour TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		payload BLOB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshot_revisions_fetched_at
		ON snapshot_revisions(fetched_at DESC)`,
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
