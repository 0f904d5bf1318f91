// Package geo resolves supplier records to map coordinates. Suppliers with
// explicit latitude/longitude are returned as-is; everything else is matched
// against a static table of known Nigerian cities and states, with a
// deterministic per-supplier offset so co-located records do not plot on top
// of each other.
package geo

import (
	"hash/fnv"
	"strings"
	"sync"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location carries the fields of a supplier relevant to geocoding.
type Location struct {
	SupplierID string
	Lat        *float64
	Lng        *float64
	Address    string
	City       string
	State      string
	Country    string
}

// maxOffsetDeg bounds the pseudo-random scatter applied to approximate
// coordinates: ±0.025° is roughly ±2.5 km.
const maxOffsetDeg = 0.025

// Resolver memoises approximate coordinates per supplier id. The cache is
// owned explicitly by whoever constructs the Resolver (typically the search
// service); it is not package-level state.
type Resolver struct {
	mu    sync.Mutex
	cache map[string]Point
}

// NewResolver returns a Resolver with an empty cache.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]Point)}
}

// Resolve returns a coordinate for the supplier. It never fails: suppliers
// with no matchable location fall back to Lagos. Exact coordinates bypass
// both the table and the cache.
func (r *Resolver) Resolve(loc Location) Point {
	if loc.Lat != nil && loc.Lng != nil {
		return Point{Lat: *loc.Lat, Lng: *loc.Lng}
	}

	r.mu.Lock()
	if pt, ok := r.cache[loc.SupplierID]; ok {
		r.mu.Unlock()
		return pt
	}
	r.mu.Unlock()

	key := lookupKey(loc)
	base := matchBase(key, loc)
	pt := offset(base, loc.SupplierID, key)

	r.mu.Lock()
	r.cache[loc.SupplierID] = pt
	r.mu.Unlock()
	return pt
}

// Reset clears the memoised coordinates.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.cache = make(map[string]Point)
	r.mu.Unlock()
}

// lookupKey joins the free-text location parts into one lowercase key.
func lookupKey(loc Location) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{loc.Address, loc.City, loc.State, loc.Country} {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// matchBase finds the base coordinate for a location key. A match against
// the full key wins over a match against the city or state field alone.
func matchBase(key string, loc Location) Point {
	if pt, ok := matchTable(key); ok {
		return pt
	}
	if pt, ok := matchTable(strings.ToLower(loc.City)); ok {
		return pt
	}
	if pt, ok := matchTable(strings.ToLower(loc.State)); ok {
		return pt
	}
	return fallback
}

// matchTable scans cities then states; first substring match wins.
func matchTable(key string) (Point, bool) {
	if key == "" {
		return Point{}, false
	}
	for _, p := range cities {
		if strings.Contains(key, p.name) {
			return p.pt, true
		}
	}
	for _, p := range states {
		if strings.Contains(key, p.name) {
			return p.pt, true
		}
	}
	return Point{}, false
}

// offset scatters a base point by up to ±maxOffsetDeg per axis, derived
// deterministically from the supplier id and location key.
func offset(base Point, supplierID, key string) Point {
	h := fnv.New32a()
	_, _ = h.Write([]byte(supplierID))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(key))
	sum := h.Sum32()

	latFrac := float64(sum%1000)/999.0 - 0.5
	lngFrac := float64((sum/1000)%1000)/999.0 - 0.5
	return Point{
		Lat: base.Lat + latFrac*2*maxOffsetDeg,
		Lng: base.Lng + lngFrac*2*maxOffsetDeg,
	}
}
