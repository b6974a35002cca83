package projections

import (
	"context"
	"fmt"

	"planner/internal/domain/trip"
)

// TripGateway defines the gateway interface for this projection.
type TripGateway interface {
	GetTrip(ctx context.Context, tripID int64) (trip.Trip, error)
	ListTripPlaces(ctx context.Context, tripID int64) ([]trip.Place, error)
}

// TripIndexForGet defines the index cache interface for this projection.
type TripIndexForGet interface {
	Get(tripID int64) (trip.IndexEntry, bool)
}

// GetTripQuery carries query parameters.
type GetTripQuery struct {
	TripID int64
}

// GetTripDeps holds dependencies for GetTrip.
type GetTripDeps struct {
	Gateway TripGateway
	Index   TripIndexForGet // optional: nil skips the cached summary
}

// GetTripResult carries the live trip plus the local summary when the
// trip is known to this client. The remote API is authoritative; a trip
// missing from the local index is still fetched normally.
type GetTripResult struct {
	Trip   trip.Trip
	Cached trip.IndexEntry
	Known  bool
}

// QueryGetTrip fetches a trip's live state from the backend.
func QueryGetTrip(ctx context.Context, q GetTripQuery, deps GetTripDeps) (GetTripResult, error) {
	live, err := deps.Gateway.GetTrip(ctx, q.TripID)
	if err != nil {
		return GetTripResult{}, fmt.Errorf("get trip: %w", err)
	}

	result := GetTripResult{Trip: live}
	if deps.Index != nil {
		result.Cached, result.Known = deps.Index.Get(q.TripID)
	}
	return result, nil
}

// ListTripPlacesQuery carries query parameters.
type ListTripPlacesQuery struct {
	TripID int64
}

// ListTripPlacesResult carries a trip's place pool.
type ListTripPlacesResult struct {
	Places []trip.Place
}

// QueryListTripPlaces fetches the place pool of an existing trip.
func QueryListTripPlaces(ctx context.Context, q ListTripPlacesQuery, deps GetTripDeps) (ListTripPlacesResult, error) {
	places, err := deps.Gateway.ListTripPlaces(ctx, q.TripID)
	if err != nil {
		return ListTripPlacesResult{}, fmt.Errorf("list trip places: %w", err)
	}
	return ListTripPlacesResult{Places: places}, nil
}
