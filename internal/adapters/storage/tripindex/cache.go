package tripindex

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"planner/internal/adapters/storage/localstate"
	"planner/internal/domain/trip"
)

// Key is the local-state key the index is persisted under.
const Key = "trip_index_v1"

// Cache is the local registry of trips this client has created: trip id
// mapped to display metadata, so "my trips" lists without a server
// round-trip. It only grows; deletion is handled upstream, and a missing
// trip id is a normal outcome (the trips API stays authoritative).
type Cache struct {
	mu      sync.Mutex
	state   localstate.Store
	entries []trip.IndexEntry
}

// New returns a Cache primed from persisted state. Absent or malformed
// persisted data degrades to an empty index.
func New(ctx context.Context, state localstate.Store) *Cache {
	c := &Cache{state: state}

	raw, ok, err := state.Get(ctx, Key)
	if err != nil {
		slog.Error("trip_index_load_failed", "error", err.Error())
		return c
	}
	if !ok {
		return c
	}
	var entries []trip.IndexEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		slog.Warn("trip_index_corrupt", "error", err.Error())
		return c
	}
	c.entries = entries
	return c
}

// Upsert records a trip summary. An entry with a known TripID is replaced
// in place, keeping the original position; a new TripID appends.
// POST: exactly one entry exists for e.TripID
func (c *Cache) Upsert(ctx context.Context, e trip.IndexEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	replaced := false
	for i := range c.entries {
		if c.entries[i].TripID == e.TripID {
			c.entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		c.entries = append(c.entries, e)
	}
	c.persist(ctx)
}

// Get returns the cached entry for tripID. A miss is a normal outcome.
func (c *Cache) Get(tripID int64) (trip.IndexEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.TripID == tripID {
			return e, true
		}
	}
	return trip.IndexEntry{}, false
}

// List returns all entries in insertion order.
func (c *Cache) List() []trip.IndexEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]trip.IndexEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// persist writes the full index to local state. Failure is soft: logged,
// never returned. Called under mu.
func (c *Cache) persist(ctx context.Context) {
	data, err := json.Marshal(c.entries)
	if err != nil {
		slog.Error("trip_index_marshal_failed", "error", err.Error())
		return
	}
	if err := c.state.Set(ctx, Key, string(data)); err != nil {
		slog.Error("trip_index_persist_failed", "error", err.Error())
	}
}
