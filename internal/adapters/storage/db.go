package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the local state database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// local_state is the durable key/value area the draft and trip index
	// live in. Values are opaque JSON text; callers own (de)serialization
	// and treat unreadable values as absent.
	schema := `
	CREATE TABLE IF NOT EXISTS local_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Open opens the SQLite database at path with the pragmas the stores
// expect and verifies the connection.
// PRE: path is a filesystem path or ":memory:"
// POST: Returns an open, pinged connection with the schema initialized
func Open(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if err := InitDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
