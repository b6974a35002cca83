package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// DefaultSlowQueryMs is the default threshold for slow query warnings.
const DefaultSlowQueryMs = 50

var slowQueryMs int64
var slowQueryOnce sync.Once

// getSlowQueryThreshold returns the slow-query threshold in milliseconds.
func getSlowQueryThreshold() float64 {
	slowQueryOnce.Do(func() {
		ms := DefaultSlowQueryMs
		if v := os.Getenv("PLANNER_SLOW_QUERY_MS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				ms = n
			}
		}
		atomic.StoreInt64(&slowQueryMs, int64(ms))
	})
	return float64(atomic.LoadInt64(&slowQueryMs))
}

// TimedDB wraps a *sql.DB to log slow local-state queries.
// Satisfies the SQLDB interface so it can be passed to any store constructor.
type TimedDB struct {
	db        *sql.DB
	threshold float64
}

// Compile-time check that *TimedDB satisfies SQLDB.
var _ SQLDB = (*TimedDB)(nil)

// NewTimedDB wraps a *sql.DB with timing instrumentation.
// PRE: db is a valid database connection
// POST: Returns a TimedDB that logs slow queries
func NewTimedDB(db *sql.DB) *TimedDB {
	return &TimedDB{
		db:        db,
		threshold: getSlowQueryThreshold(),
	}
}

// RawDB returns the underlying *sql.DB (needed for schema init and closing).
func (t *TimedDB) RawDB() *sql.DB {
	return t.db
}

// logQuery logs a query timing, warning when it crosses the threshold.
func (t *TimedDB) logQuery(op string, start time.Time) {
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0

	if durationMs >= t.threshold {
		slog.Warn("slow_query",
			"op", op,
			"duration_ms", durationMs,
		)
	} else {
		slog.Debug("query",
			"op", op,
			"duration_ms", durationMs,
		)
	}
}

// ExecContext wraps sql.DB.ExecContext with timing.
func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := t.db.ExecContext(ctx, query, args...)
	t.logQuery("ExecContext", start)
	return result, err
}

// QueryContext wraps sql.DB.QueryContext with timing.
func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.db.QueryContext(ctx, query, args...)
	t.logQuery("QueryContext", start)
	return rows, err
}

// QueryRowContext wraps sql.DB.QueryRowContext with timing.
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.db.QueryRowContext(ctx, query, args...)
	t.logQuery("QueryRowContext", start)
	return row
}

// Close closes the underlying database connection.
func (t *TimedDB) Close() error {
	return t.db.Close()
}
