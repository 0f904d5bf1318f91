package search

import "github.com/olufinja/naijafind/internal/suppliers"

// Sort orders supported by the directory.
const (
	SortRelevance = "relevance"
	SortDistance  = "distance"
	SortRating    = "rating"
	SortReviews   = "reviews"
)

// Params describes one directory search.
type Params struct {
	// Query is matched case-insensitively against business name and
	// description.
	Query string
	// Category must equal the supplier's category exactly.
	Category string
	// Location is free text resolved to an origin for distance sorting
	// when Lat/Lng are not given.
	Location string
	// Lat/Lng set the search origin directly.
	Lat *float64
	Lng *float64
	// RadiusKm drops suppliers farther than this from the origin. Zero
	// means no radius filter.
	RadiusKm float64
	// MinRating drops suppliers rated below this value.
	MinRating float64
	// VerifiedOnly keeps only suppliers with the verified badge.
	VerifiedOnly bool
	// SortBy is one of the Sort constants. Empty means relevance.
	SortBy string
	Limit  int
	Offset int
}

// Result is one page of matches. Total counts the whole filtered set, not
// the page.
type Result struct {
	Suppliers []Item `json:"suppliers"`
	Total     int    `json:"total"`
}

// Item is a supplier hit plus its resolved coordinate and, when an origin
// was available, its distance from it.
type Item struct {
	suppliers.Supplier
	ResolvedLat float64  `json:"resolved_lat"`
	ResolvedLng float64  `json:"resolved_lng"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
}
