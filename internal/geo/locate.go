package geo

import "strings"

// Locate resolves free-text location input, such as a search origin, to a
// base coordinate. No per-supplier offset is applied. The boolean reports
// whether the text matched the table; the fallback point is returned either
// way.
func Locate(text string) (Point, bool) {
	key := strings.TrimSpace(strings.ToLower(text))
	if key == "" {
		return fallback, false
	}
	if pt, ok := matchTable(key); ok {
		return pt, true
	}
	return fallback, false
}
