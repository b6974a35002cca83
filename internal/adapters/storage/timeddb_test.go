package storage

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openTimedTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.Exec("CREATE TABLE test (id TEXT PRIMARY KEY, val TEXT)")
	return db
}

// TestTimedDB_ExecContext verifies ExecContext passes through to the DB.
func TestTimedDB_ExecContext(t *testing.T) {
	db := openTimedTestDB(t)
	defer db.Close()
	tdb := NewTimedDB(db)

	_, err := tdb.ExecContext(context.Background(), "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello")
	if err != nil {
		t.Fatalf("ExecContext: %v", err)
	}

	var val string
	if err := tdb.QueryRowContext(context.Background(), "SELECT val FROM test WHERE id = ?", "1").Scan(&val); err != nil {
		t.Fatalf("QueryRowContext: %v", err)
	}
	if val != "hello" {
		t.Errorf("val = %q, want %q", val, "hello")
	}
}

// TestTimedDB_QueryContext verifies QueryContext passes through to the DB.
func TestTimedDB_QueryContext(t *testing.T) {
	db := openTimedTestDB(t)
	defer db.Close()
	tdb := NewTimedDB(db)

	tdb.ExecContext(context.Background(), "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello")

	rows, err := tdb.QueryContext(context.Background(), "SELECT id, val FROM test")
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	defer rows.Close()
	count := 0
	for rows.Next() {
		count++
		var id, val string
		rows.Scan(&id, &val)
	}
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}
}
