package trip

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire format for trip dates. Comparing two dates in
// this layout lexicographically orders them chronologically.
const DateLayout = "2006-01-02"

// DefaultTitle is used when the user leaves the trip title blank.
const DefaultTitle = "My trip"

// MinDays and MaxDays bound the length of a trip, inclusive.
const (
	MinDays = 1
	MaxDays = 60
)

var (
	ErrEmptyDraft      = errors.New("draft has no places to commit")
	ErrDayCountRange   = errors.New("day count must be between 1 and 60")
	ErrStartDateFormat = errors.New("start date must be YYYY-MM-DD")
	ErrStartDatePast   = errors.New("start date must not be in the past")
)

// Params are the user-supplied parameters for a new trip. StartDate is a
// DateLayout string or empty for "no fixed start".
type Params struct {
	Title     string
	Days      int
	StartDate string
}

// Validate checks trip parameters against the given local calendar date.
// PRE: today is a DateLayout string
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: today itself is an acceptable start date
func (p *Params) Validate(today string) error {
	if p.Days < MinDays || p.Days > MaxDays {
		return ErrDayCountRange
	}
	if p.StartDate != "" {
		if _, err := time.Parse(DateLayout, p.StartDate); err != nil {
			return ErrStartDateFormat
		}
		if p.StartDate < today {
			return ErrStartDatePast
		}
	}
	return nil
}

// DisplayTitle returns the trimmed title, or DefaultTitle when blank.
func (p Params) DisplayTitle() string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	return DefaultTitle
}

// IndexEntry is the locally cached summary of a server-side trip, keyed by
// the server-issued TripID. StartDate is empty when the trip has none.
type IndexEntry struct {
	TripID    int64  `json:"trip_id"`
	Title     string `json:"title"`
	Days      int    `json:"days"`
	StartDate string `json:"start_date,omitempty"`
}

// Trip is the live server representation fetched from the trips API.
type Trip struct {
	TripID    int64
	Title     string
	Days      int
	StartDate string
}

// Place is a place attached to a server-side trip. DestinationID is the
// server's row id for the attachment and is what removal is keyed by.
type Place struct {
	DestinationID int64
	PlaceRef      string
	Name          string
	Locality      string
	Lat           float64
	Lng           float64
	CoverImageURL string
}
