package draftstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"planner/internal/adapters/storage/localstate"
	"planner/internal/domain/draft"
)

// Key is the local-state key the draft is persisted under.
const Key = "trip_draft_v1"

// Store holds the user's pre-commit selection of places. Mutations are
// serialized and each successful mutation persists the full set; a
// persistence failure is logged and never surfaced, so the in-memory
// draft stays usable even when the local database misbehaves.
type Store struct {
	mu       sync.Mutex
	state    localstate.Store
	places   []draft.Place
	refs     map[string]struct{}
	onChange func([]draft.Place)
}

// New returns a Store primed from persisted state. Absent or malformed
// persisted data degrades to an empty draft; it never fails construction.
func New(ctx context.Context, state localstate.Store) *Store {
	s := &Store{state: state, refs: map[string]struct{}{}}

	raw, ok, err := state.Get(ctx, Key)
	if err != nil {
		slog.Error("draft_load_failed", "error", err.Error())
		return s
	}
	if !ok {
		return s
	}
	var places []draft.Place
	if err := json.Unmarshal([]byte(raw), &places); err != nil {
		slog.Warn("draft_state_corrupt", "error", err.Error())
		return s
	}
	s.places = places
	s.reindex()
	return s
}

// SetOnChange registers a callback invoked with the new snapshot after
// every mutation. The UI layer subscribes here; the store itself has no
// rendering concerns.
func (s *Store) SetOnChange(fn func([]draft.Place)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Add appends a place to the draft. Adding a place whose PlaceRef is
// already present is a no-op.
// PRE: p.PlaceRef is non-empty
// POST: returns true when the place was newly added, false otherwise
func (s *Store) Add(ctx context.Context, p draft.Place) bool {
	if err := p.Validate(); err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.refs[p.PlaceRef]; ok {
		return false
	}
	s.places = append(s.places, p)
	s.reindex()
	s.persist(ctx)
	return true
}

// Remove deletes the place with the given reference. Removing an absent
// reference is a no-op.
// POST: returns true when a place was removed
func (s *Store) Remove(ctx context.Context, placeRef string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.refs[placeRef]; !ok {
		return false
	}
	kept := s.places[:0]
	for _, p := range s.places {
		if p.PlaceRef != placeRef {
			kept = append(kept, p)
		}
	}
	s.places = kept
	s.reindex()
	s.persist(ctx)
	return true
}

// Clear empties the draft unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.places = nil
	s.reindex()
	s.persist(ctx)
}

// Contains reports whether a place with the given reference is in the
// draft. Backed by a derived set, so it does not scan the slice.
func (s *Store) Contains(placeRef string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.refs[placeRef]
	return ok
}

// Len returns the number of places in the draft.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.places)
}

// Snapshot returns a copy of the draft in insertion order.
func (s *Store) Snapshot() []draft.Place {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []draft.Place {
	out := make([]draft.Place, len(s.places))
	copy(out, s.places)
	return out
}

// reindex rebuilds the derived PlaceRef set. Called under mu after every
// mutation, never on reads.
func (s *Store) reindex() {
	refs := make(map[string]struct{}, len(s.places))
	for _, p := range s.places {
		refs[p.PlaceRef] = struct{}{}
	}
	s.refs = refs
}

// persist writes the full draft to local state. Failure is soft: logged,
// never returned. Called under mu.
func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.places)
	if err != nil {
		slog.Error("draft_marshal_failed", "error", err.Error())
		return
	}
	if err := s.state.Set(ctx, Key, string(data)); err != nil {
		slog.Error("draft_persist_failed", "error", err.Error())
	}
	if s.onChange != nil {
		s.onChange(s.snapshotLocked())
	}
}
