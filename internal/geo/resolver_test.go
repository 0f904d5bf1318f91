package geo

import (
	"math"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestResolveExactCoordinatesPassThrough(t *testing.T) {
	r := NewResolver()
	loc := Location{
		SupplierID: "sup-1",
		Lat:        f64(6.6018),
		Lng:        f64(3.3515),
		City:       "Ikeja",
		State:      "Lagos",
	}
	got := r.Resolve(loc)
	if got.Lat != 6.6018 || got.Lng != 3.3515 {
		t.Fatalf("expected exact coordinates back, got %+v", got)
	}
	// No offset, no cache involvement: repeated calls identical.
	if again := r.Resolve(loc); again != got {
		t.Fatalf("exact resolve not idempotent: %+v vs %+v", again, got)
	}
}

func TestResolveKnownCity(t *testing.T) {
	r := NewResolver()
	got := r.Resolve(Location{SupplierID: "sup-2", City: "Kano", Country: "Nigeria"})
	if math.Abs(got.Lat-12.0022) > maxOffsetDeg || math.Abs(got.Lng-8.5920) > maxOffsetDeg {
		t.Fatalf("expected point near Kano, got %+v", got)
	}
}

func TestResolveFullKeyPreferredOverState(t *testing.T) {
	r := NewResolver()
	// "Lekki, Lagos" must match the Lekki entry, not the Lagos one.
	got := r.Resolve(Location{SupplierID: "sup-3", Address: "12 Admiralty Way", City: "Lekki", State: "Lagos"})
	if math.Abs(got.Lat-6.4698) > maxOffsetDeg || math.Abs(got.Lng-3.5852) > maxOffsetDeg {
		t.Fatalf("expected point near Lekki, got %+v", got)
	}
}

func TestResolveUnknownFallsBackToLagos(t *testing.T) {
	r := NewResolver()
	got := r.Resolve(Location{SupplierID: "sup-4", City: "Atlantis"})
	if math.Abs(got.Lat-fallback.Lat) > maxOffsetDeg || math.Abs(got.Lng-fallback.Lng) > maxOffsetDeg {
		t.Fatalf("expected fallback near Lagos, got %+v", got)
	}
}

func TestResolveStableWithinSession(t *testing.T) {
	r := NewResolver()
	loc := Location{SupplierID: "sup-5", City: "Enugu"}
	first := r.Resolve(loc)
	for i := 0; i < 10; i++ {
		if got := r.Resolve(loc); got != first {
			t.Fatalf("resolve not stable: %+v vs %+v", got, first)
		}
	}
}

func TestResolveDistinctSuppliersScatter(t *testing.T) {
	r := NewResolver()
	a := r.Resolve(Location{SupplierID: "sup-6", City: "Ibadan"})
	b := r.Resolve(Location{SupplierID: "sup-7", City: "Ibadan"})
	if a == b {
		t.Fatalf("two suppliers with same location plotted identically: %+v", a)
	}
	base := Point{7.3775, 3.9470}
	for _, pt := range []Point{a, b} {
		if math.Abs(pt.Lat-base.Lat) > maxOffsetDeg || math.Abs(pt.Lng-base.Lng) > maxOffsetDeg {
			t.Fatalf("offset exceeds bound: %+v", pt)
		}
		if DistanceKm(pt, base) > 4 {
			t.Fatalf("scattered point too far from base: %.2f km", DistanceKm(pt, base))
		}
	}
}

func TestResolveDeterministicAcrossResolvers(t *testing.T) {
	loc := Location{SupplierID: "sup-8", City: "Jos"}
	a := NewResolver().Resolve(loc)
	b := NewResolver().Resolve(loc)
	if a != b {
		t.Fatalf("offset not deterministic: %+v vs %+v", a, b)
	}
}

func TestDistanceKm(t *testing.T) {
	lagos := Point{6.5244, 3.3792}
	abuja := Point{9.0765, 7.3986}
	d := DistanceKm(lagos, abuja)
	// Straight-line Lagos to Abuja is roughly 530 km.
	if d < 500 || d > 560 {
		t.Fatalf("unexpected Lagos-Abuja distance: %.1f km", d)
	}
	if DistanceKm(lagos, lagos) != 0 {
		t.Fatalf("distance to self should be zero")
	}
}
