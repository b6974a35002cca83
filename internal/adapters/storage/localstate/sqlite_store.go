package localstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	storage "planner/internal/adapters/storage"
)

type sqliteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore returns a Store backed by SQLite.
func NewSQLiteStore(db storage.SQLDB) Store {
	return &sqliteStore{db: db}
}

// Get retrieves the value stored under key.
// PRE: key is non-empty
// POST: returns (value, true) when present, ("", false) when absent
func (s *sqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM local_state WHERE key = ?`, key)

	var value string
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("local state get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
// PRE: key is non-empty
// POST: row upserted into local_state
func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO local_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("local state set %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is a no-op.
func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM local_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("local state delete %q: %w", key, err)
	}
	return nil
}
