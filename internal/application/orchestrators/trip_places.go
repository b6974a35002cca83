package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"planner/internal/domain/trip"
)

var (
	ErrBlankPlaceRef = errors.New("place reference is blank")
	ErrBadTripID     = errors.New("trip id must be a positive integer")
)

// TripPlacesGateway defines the gateway interface for per-trip place
// management on an existing trip.
type TripPlacesGateway interface {
	AddTripPlace(ctx context.Context, tripID int64, placeRef string) (trip.Place, error)
	RemoveTripPlace(ctx context.Context, tripID, destinationID int64) error
}

// AddTripPlaceCommand holds input for attaching a place to a trip.
type AddTripPlaceCommand struct {
	TripID   int64
	PlaceRef string
}

// TripPlacesDeps holds dependencies for the trip place flows.
type TripPlacesDeps struct {
	Gateway TripPlacesGateway
}

// ExecuteAddTripPlace attaches a place to an existing trip.
// PRE: TripID is positive, PlaceRef is non-blank
// POST: Returns the server's place record for the attachment
func ExecuteAddTripPlace(ctx context.Context, cmd AddTripPlaceCommand, deps TripPlacesDeps) (trip.Place, error) {
	if cmd.TripID <= 0 {
		return trip.Place{}, ErrBadTripID
	}
	if strings.TrimSpace(cmd.PlaceRef) == "" {
		return trip.Place{}, ErrBlankPlaceRef
	}

	place, err := deps.Gateway.AddTripPlace(ctx, cmd.TripID, strings.TrimSpace(cmd.PlaceRef))
	if err != nil {
		return trip.Place{}, fmt.Errorf("add trip place: %w", err)
	}
	slog.Info("trip_place_added", "trip_id", cmd.TripID, "destination_id", place.DestinationID)
	return place, nil
}

// RemoveTripPlaceCommand holds input for detaching a place from a trip.
type RemoveTripPlaceCommand struct {
	TripID        int64
	DestinationID int64
}

// ExecuteRemoveTripPlace detaches a place from an existing trip.
// PRE: TripID and DestinationID are positive
func ExecuteRemoveTripPlace(ctx context.Context, cmd RemoveTripPlaceCommand, deps TripPlacesDeps) error {
	if cmd.TripID <= 0 || cmd.DestinationID <= 0 {
		return ErrBadTripID
	}
	if err := deps.Gateway.RemoveTripPlace(ctx, cmd.TripID, cmd.DestinationID); err != nil {
		return fmt.Errorf("remove trip place: %w", err)
	}
	slog.Info("trip_place_removed", "trip_id", cmd.TripID, "destination_id", cmd.DestinationID)
	return nil
}
