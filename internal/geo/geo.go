// Package geo provides great-circle distance math for the proximity engine.
package geo

import (
	"math"

	"yatra/internal/domain/entity"

	"github.com/paulmach/orb"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance between two
// coordinates in kilometres. Symmetric, and zero exactly when a == b.
func DistanceKm(a, b entity.Coordinate) float64 {
	if a == b {
		return 0
	}

	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*sinLon*sinLon

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// BoundAround returns a degree box guaranteed to contain every point within
// radiusKm of the centre. Used as a cheap prefilter before the exact
// haversine distance; it over-approximates, never excludes.
func BoundAround(center entity.Coordinate, radiusKm float64) orb.Bound {
	// 1 degree of latitude is ~111 km; pad by 10% so the box stays a
	// superset of the circle even near the poles' longitude stretch.
	latDelta := radiusKm / 111.0 * 1.1

	cosLat := math.Cos(radians(center.Latitude))
	lonDelta := 180.0
	if cosLat > 1e-6 {
		lonDelta = radiusKm / (111.0 * cosLat) * 1.1
	}

	return orb.Bound{
		Min: orb.Point{center.Longitude - lonDelta, center.Latitude - latDelta},
		Max: orb.Point{center.Longitude + lonDelta, center.Latitude + latDelta},
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
