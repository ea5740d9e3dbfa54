package services

import (
	"math"

	"waste-routing-service/internal/domain"
)

const (
	earthRadiusKm = 6371
	// Fixed urban average speed; no traffic model.
	averageSpeedKmh = 30
)

// DistanceKm computes the great-circle (haversine) distance between two
// points in kilometers. Symmetric, zero iff the points are identical.
func DistanceKm(a, b domain.Coordinates) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// TravelTimeMinutes estimates travel time for a distance at the fixed
// average speed, rounded to the nearest whole minute.
func TravelTimeMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm / averageSpeedKmh * 60))
}
