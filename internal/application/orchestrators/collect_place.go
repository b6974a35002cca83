package orchestrators

import (
	"context"
	"log/slog"

	"planner/internal/domain/attraction"
	"planner/internal/domain/draft"
)

// DraftStoreForCollect defines the draft store interface needed by the
// collect/discard flows.
type DraftStoreForCollect interface {
	Add(ctx context.Context, p draft.Place) bool
	Remove(ctx context.Context, placeRef string) bool
}

// CollectPlaceCommand holds the accepted search result.
type CollectPlaceCommand struct {
	Attraction attraction.Attraction
}

// CollectPlaceDeps holds dependencies for CollectPlace.
type CollectPlaceDeps struct {
	Draft DraftStoreForCollect
}

// ExecuteCollectPlace converts an accepted attraction into a draft place
// and adds it. Adding an attraction already in the draft is a no-op.
// PRE: the attraction carries a place reference
// POST: returns true when the place was newly added
func ExecuteCollectPlace(ctx context.Context, cmd CollectPlaceCommand, deps CollectPlaceDeps) (bool, error) {
	a := cmd.Attraction
	place := draft.Place{
		PlaceRef:      a.PlaceRef,
		Name:          a.Name,
		Locality:      a.City,
		CoverImageURL: a.CoverURL(),
	}
	if err := place.Validate(); err != nil {
		return false, err
	}

	added := deps.Draft.Add(ctx, place)
	if added {
		slog.Debug("draft_place_collected", "place_ref", place.PlaceRef, "name", place.Name)
	}
	return added, nil
}

// DiscardPlaceCommand identifies the draft place to drop.
type DiscardPlaceCommand struct {
	PlaceRef string
}

// ExecuteDiscardPlace removes a place from the draft by reference.
// POST: returns true when a place was removed
func ExecuteDiscardPlace(ctx context.Context, cmd DiscardPlaceCommand, deps CollectPlaceDeps) bool {
	return deps.Draft.Remove(ctx, cmd.PlaceRef)
}
