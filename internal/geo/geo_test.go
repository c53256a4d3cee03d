package geo

import (
	"testing"

	"yatra/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

var (
	delhiCenter = entity.Coordinate{Latitude: 28.6139, Longitude: 77.2090}
	indiaGate   = entity.Coordinate{Latitude: 28.6129, Longitude: 77.2295}
	tajMahal    = entity.Coordinate{Latitude: 27.1751, Longitude: 78.0421}
)

func TestDistanceKm_Symmetric(t *testing.T) {
	pairs := []struct {
		a, b entity.Coordinate
	}{
		{delhiCenter, indiaGate},
		{delhiCenter, tajMahal},
		{indiaGate, tajMahal},
		{entity.Coordinate{Latitude: -33.8688, Longitude: 151.2093}, entity.Coordinate{Latitude: 51.5074, Longitude: -0.1278}},
	}

	for _, pair := range pairs {
		assert.InDelta(t, DistanceKm(pair.a, pair.b), DistanceKm(pair.b, pair.a), 1e-9)
	}
}

func TestDistanceKm_ZeroForIdenticalPoints(t *testing.T) {
	assert.Zero(t, DistanceKm(delhiCenter, delhiCenter))
	assert.Zero(t, DistanceKm(tajMahal, tajMahal))
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	// India Gate is roughly 2 km from the Delhi centre point.
	assert.InDelta(t, 2.0, DistanceKm(delhiCenter, indiaGate), 0.5)

	// The Taj Mahal in Agra is ~180 km from central Delhi.
	agra := DistanceKm(delhiCenter, tajMahal)
	assert.Greater(t, agra, 150.0)
	assert.Less(t, agra, 220.0)
}

func TestDistanceKm_AlwaysNonNegative(t *testing.T) {
	coords := []entity.Coordinate{
		{Latitude: 90, Longitude: 0},
		{Latitude: -90, Longitude: 0},
		{Latitude: 0, Longitude: 180},
		{Latitude: 0, Longitude: -180},
		delhiCenter,
	}

	for _, a := range coords {
		for _, b := range coords {
			assert.GreaterOrEqual(t, DistanceKm(a, b), 0.0)
		}
	}
}

func TestBoundAround_ContainsPointsWithinRadius(t *testing.T) {
	bound := BoundAround(delhiCenter, 10)

	// India Gate sits ~2 km away and must never be prefiltered out.
	assert.True(t, bound.Contains(indiaGate.Point()))

	// The Taj Mahal is ~180 km away; the 10 km box must exclude it.
	assert.False(t, bound.Contains(tajMahal.Point()))
}

func TestBoundAround_NeverExcludesInRadiusPoints(t *testing.T) {
	// Sweep points placed just inside the radius in multiple directions.
	const radiusKm = 5.0
	offsets := []entity.Coordinate{
		{Latitude: delhiCenter.Latitude + 0.04, Longitude: delhiCenter.Longitude},
		{Latitude: delhiCenter.Latitude - 0.04, Longitude: delhiCenter.Longitude},
		{Latitude: delhiCenter.Latitude, Longitude: delhiCenter.Longitude + 0.045},
		{Latitude: delhiCenter.Latitude, Longitude: delhiCenter.Longitude - 0.045},
	}

	bound := BoundAround(delhiCenter, radiusKm)
	for _, p := range offsets {
		if DistanceKm(delhiCenter, p) <= radiusKm {
			assert.True(t, bound.Contains(p.Point()), "point %+v within radius escaped the bound", p)
		}
	}
}
