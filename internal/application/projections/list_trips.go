package projections

import (
	"planner/internal/domain/trip"
)

// TripIndexForList defines the index cache interface for this projection.
type TripIndexForList interface {
	List() []trip.IndexEntry
}

// ListTripsDeps holds dependencies for ListTrips.
type ListTripsDeps struct {
	Index TripIndexForList
}

// ListTripsResult carries the locally known trips.
type ListTripsResult struct {
	Trips []trip.IndexEntry
}

// QueryListTrips lists the trips this client has created, straight from
// the local index without a server round-trip. An empty index simply means no
// trips have been created from this client yet.
func QueryListTrips(deps ListTripsDeps) ListTripsResult {
	return ListTripsResult{Trips: deps.Index.List()}
}
