package draft

import "errors"

// Place is a candidate place the user has tentatively selected for a
// not-yet-created trip. PlaceRef is the opaque external place identifier
// (google_place_id upstream) and is the unique key within a draft.
type Place struct {
	PlaceRef      string `json:"google_place_id"`
	Name          string `json:"attraction"`
	Locality      string `json:"city"`
	CoverImageURL string `json:"cover_url,omitempty"`
}

var (
	ErrMissingPlaceRef = errors.New("draft place reference is required")
)

// Validate checks required fields for a Place.
// PRE: Place struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Place) Validate() error {
	if p.PlaceRef == "" {
		return ErrMissingPlaceRef
	}
	return nil
}

// DedupeRefs returns the place references of the given places with
// duplicates removed, first-occurrence order preserved. A draft built
// through Store.Add never contains duplicates, but the submission path
// dedupes anyway so a hand-built snapshot cannot double-submit a place.
func DedupeRefs(places []Place) []string {
	seen := make(map[string]struct{}, len(places))
	refs := make([]string, 0, len(places))
	for _, p := range places {
		if p.PlaceRef == "" {
			continue
		}
		if _, ok := seen[p.PlaceRef]; ok {
			continue
		}
		seen[p.PlaceRef] = struct{}{}
		refs = append(refs, p.PlaceRef)
	}
	return refs
}
