package attraction

import "errors"

// Image is one photo of an attraction as returned by the search API.
type Image struct {
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Attraction is a search result item. PlaceRef carries the opaque external
// place identifier used everywhere else in the system.
type Attraction struct {
	ID          int64   `json:"id"`
	Name        string  `json:"attraction"`
	City        string  `json:"city"`
	Description string  `json:"description"`
	GeoTags     string  `json:"geo_tags"`
	Images      []Image `json:"images"`
	PlaceRef    string  `json:"google_place_id"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

var (
	ErrBlankQuery = errors.New("search query is blank")
)

// CoverURL returns the URL of the first image, or empty when the
// attraction has no photos.
func (a Attraction) CoverURL() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0].URL
}
