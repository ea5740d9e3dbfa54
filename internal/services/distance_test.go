package services

import (
	"math"
	"testing"

	"waste-routing-service/internal/domain"
)

func TestDistanceSymmetryAndIdentity(t *testing.T) {
	a := domain.Coordinates{Lat: 48.8566, Lon: 2.3522}
	b := domain.Coordinates{Lat: 52.5200, Lon: 13.4050}

	if d := DistanceKm(a, a); d != 0 {
		t.Fatalf("distance(a,a) = %v, want 0", d)
	}

	ab := DistanceKm(a, b)
	ba := DistanceKm(b, a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
	if ab <= 0 {
		t.Fatalf("distance(a,b) = %v, want positive", ab)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// One degree of longitude along the equator is R * pi/180.
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 0, Lon: 1}

	want := 6371 * math.Pi / 180
	got := DistanceKm(a, b)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("distance = %v, want %v", got, want)
	}
}

func TestTravelTimeMinutes(t *testing.T) {
	// 30 km at 30 km/h is exactly one hour.
	if got := TravelTimeMinutes(30); got != 60 {
		t.Fatalf("travel time for 30km = %d, want 60", got)
	}
	if got := TravelTimeMinutes(0); got != 0 {
		t.Fatalf("travel time for 0km = %d, want 0", got)
	}
	// 10 km -> 20 minutes exactly; 10.2 km -> 20.4 rounds down.
	if got := TravelTimeMinutes(10.2); got != 20 {
		t.Fatalf("travel time for 10.2km = %d, want 20", got)
	}
	// 10.3 km -> 20.6 rounds up.
	if got := TravelTimeMinutes(10.3); got != 21 {
		t.Fatalf("travel time for 10.3km = %d, want 21", got)
	}
}
