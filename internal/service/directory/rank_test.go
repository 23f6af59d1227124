package directory

import (
	"context"
	"math"
	"testing"

	"github.com/homefix/homefix-api/internal/platform/geo"
)

const (
	originLat = 33.6844
	originLng = 73.0479
)

func TestRankByDistanceSortedAndBounded(t *testing.T) {
	details := []Details{
		{UserID: "far", Lat: ptr(34.6844), Lng: ptr(originLng)},
		{UserID: "here", Lat: ptr(originLat), Lng: ptr(originLng)},
		{UserID: "near", Lat: ptr(33.70), Lng: ptr(73.05)},
		{UserID: "mid", Lat: ptr(34.00), Lng: ptr(73.20)},
	}
	origin := geo.Point{Lat: originLat, Lng: originLng}

	ranked := rankByDistance(origin, details, 10)
	if len(ranked) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].distanceKm < ranked[i-1].distanceKm {
			t.Fatalf("output not sorted non-decreasing at %d: %v < %v",
				i, ranked[i].distanceKm, ranked[i-1].distanceKm)
		}
	}
	if ranked[0].details.UserID != "here" {
		t.Errorf("expected zero-distance candidate first, got %s", ranked[0].details.UserID)
	}
	if ranked[0].distanceKm != 0.0 {
		t.Errorf("expected exact 0.0 distance for requester's coordinate, got %v", ranked[0].distanceKm)
	}

	// One degree of latitude from the origin is ~111 km.
	last := ranked[len(ranked)-1]
	if last.details.UserID != "far" || math.Abs(last.distanceKm-111.0) > 0.01 {
		t.Errorf("expected far at ~111 km, got %s at %v", last.details.UserID, last.distanceKm)
	}

	// Truncation: output length is min(N, candidate count).
	if got := rankByDistance(origin, details, 2); len(got) != 2 {
		t.Errorf("expected truncation to 2, got %d", len(got))
	}
}

func TestRankByDistanceExcludesMissingCoordinates(t *testing.T) {
	details := []Details{
		{UserID: "no-coords"},
		{UserID: "lat-only", Lat: ptr(33.7)},
		{UserID: "lng-only", Lng: ptr(73.0)},
		{UserID: "ok", Lat: ptr(33.7), Lng: ptr(73.0)},
	}
	ranked := rankByDistance(geo.Point{Lat: originLat, Lng: originLng}, details, 100)
	if len(ranked) != 1 || ranked[0].details.UserID != "ok" {
		t.Fatalf("expected only the fully-located candidate, got %+v", ranked)
	}
}

func TestRankByDistanceExcludesUnavailable(t *testing.T) {
	details := []Details{
		{UserID: "offline", Lat: ptr(33.7), Lng: ptr(73.0), Available: ptr(false)},
		{UserID: "online", Lat: ptr(33.7), Lng: ptr(73.0), Available: ptr(true)},
	}
	ranked := rankByDistance(geo.Point{Lat: originLat, Lng: originLng}, details, 100)
	if len(ranked) != 1 || ranked[0].details.UserID != "online" {
		t.Fatalf("expected only the available candidate, got %+v", ranked)
	}
}

func TestNearbyJoinsTruncatedSet(t *testing.T) {
	store := testStore()
	d := New(store, testCatalog(), 4)

	got := d.Nearby(context.Background(), originLat, originLng, 0)
	// p2 has no coordinates; p1 and p3 rank by distance.
	if len(got) != 2 {
		t.Fatalf("expected 2 ranked providers, got %d", len(got))
	}
	if got[0].ID != "p1" || got[1].ID != "p3" {
		t.Fatalf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Name != "Ahmad Khan" {
		t.Errorf("expected joined name, got %q", got[0].Name)
	}
	if got[1].CategoryLabel != "Electrician, Telecom" {
		t.Errorf("expected joined label, got %q", got[1].CategoryLabel)
	}
	if got[0].DistanceKm >= got[1].DistanceKm {
		t.Errorf("expected ascending distances, got %v then %v", got[0].DistanceKm, got[1].DistanceKm)
	}
}

func TestNearbyEmptyCandidatesIsEmptyNotError(t *testing.T) {
	store := &MockStore{}
	d := New(store, testCatalog(), 4)
	if got := d.Nearby(context.Background(), originLat, originLng, 4); len(got) != 0 {
		t.Fatalf("expected empty ranked result, got %d", len(got))
	}
}

func TestNearbyUsesConfiguredBound(t *testing.T) {
	store := &MockStore{}
	for i := 0; i < 8; i++ {
		lat := originLat + float64(i)*0.01
		store.Details = append(store.Details, Details{
			UserID: string(rune('a' + i)),
			Lat:    ptr(lat),
			Lng:    ptr(originLng),
		})
	}
	d := New(store, testCatalog(), 4)

	if got := d.Nearby(context.Background(), originLat, originLng, 0); len(got) != 4 {
		t.Errorf("expected configured bound of 4, got %d", len(got))
	}
	if got := d.Nearby(context.Background(), originLat, originLng, 6); len(got) != 6 {
		t.Errorf("expected caller bound of 6, got %d", len(got))
	}
}
