package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"planner/internal/domain/draft"
	"planner/internal/domain/trip"
)

// ErrCreateInFlight rejects a second submission while one is pending.
// Trip creation is not idempotent server-side; letting a double-click
// through would create two trips.
var ErrCreateInFlight = errors.New("a trip is already being created")

// CreateTripGate serializes trip creation. One gate per application.
type CreateTripGate struct {
	busy atomic.Bool
}

func (g *CreateTripGate) acquire() bool { return g.busy.CompareAndSwap(false, true) }
func (g *CreateTripGate) release()      { g.busy.Store(false) }

// TripCreatorGateway defines the gateway interface needed by CreateTrip.
type TripCreatorGateway interface {
	CreateTrip(ctx context.Context, title string, days int, startDate string, placeRefs []string) (int64, error)
}

// DraftStoreForCreateTrip defines the draft store interface needed by CreateTrip.
type DraftStoreForCreateTrip interface {
	Snapshot() []draft.Place
	Clear(ctx context.Context)
}

// TripIndexForCreateTrip defines the index cache interface needed by CreateTrip.
type TripIndexForCreateTrip interface {
	Upsert(ctx context.Context, e trip.IndexEntry)
}

// CreateTripCommand holds the user-supplied input for trip creation.
// Today is the local calendar date in trip.DateLayout; it is injected for
// testability and defaulted when empty.
type CreateTripCommand struct {
	Title     string
	Days      int
	StartDate string
	Today     string
}

// CreateTripDeps holds dependencies for CreateTrip.
type CreateTripDeps struct {
	Gateway TripCreatorGateway
	Draft   DraftStoreForCreateTrip
	Index   TripIndexForCreateTrip
	Gate    *CreateTripGate
}

// ExecuteCreateTrip validates the draft and trip parameters, submits the
// creation request once, and on success records the trip locally and
// clears the draft.
// PRE: Draft is non-empty, Days in [1,60], StartDate absent or >= Today
// POST: On success the index holds the new trip and the draft is empty;
// on failure no local state changed
// INVARIANT: The creation request is sent at most once per invocation
func ExecuteCreateTrip(ctx context.Context, cmd CreateTripCommand, deps CreateTripDeps) (trip.IndexEntry, error) {
	snapshot := deps.Draft.Snapshot()
	if len(snapshot) == 0 {
		return trip.IndexEntry{}, trip.ErrEmptyDraft
	}

	params := trip.Params{Title: cmd.Title, Days: cmd.Days, StartDate: cmd.StartDate}
	today := cmd.Today
	if today == "" {
		today = time.Now().Format(trip.DateLayout)
	}
	if err := params.Validate(today); err != nil {
		return trip.IndexEntry{}, err
	}

	placeRefs := draft.DedupeRefs(snapshot)
	if len(placeRefs) == 0 {
		return trip.IndexEntry{}, trip.ErrEmptyDraft
	}

	if !deps.Gate.acquire() {
		return trip.IndexEntry{}, ErrCreateInFlight
	}
	defer deps.Gate.release()

	title := params.DisplayTitle()
	tripID, err := deps.Gateway.CreateTrip(ctx, title, params.Days, params.StartDate, placeRefs)
	if err != nil {
		slog.Info("trip_create_failed", "error", err.Error(), "places", len(placeRefs))
		return trip.IndexEntry{}, fmt.Errorf("create trip: %w", err)
	}

	// The entry is built from what was submitted, not re-fetched. Index
	// persistence failures are soft (logged inside the cache); the trip
	// exists server-side either way.
	entry := trip.IndexEntry{
		TripID:    tripID,
		Title:     title,
		Days:      params.Days,
		StartDate: params.StartDate,
	}
	deps.Index.Upsert(ctx, entry)
	deps.Draft.Clear(ctx)

	slog.Info("trip_created", "trip_id", tripID, "days", params.Days, "places", len(placeRefs))
	return entry, nil
}
