package sqlite

import "database/sql"

// schema sets up the database. These statements run on startup to ensure
// tables exist. Each row of kv holds one JSON document under a fixed key.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
