// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation for the key-value cache
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_kv_entries_updated_at ON kv_entries(updated_at DESC);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
