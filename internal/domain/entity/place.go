// Package entity contains the core business objects of the project.
package entity

import "github.com/paulmach/orb"

// PlaceCategory classifies a catalog entry.
type PlaceCategory string

const (
	CategoryAttraction PlaceCategory = "attraction"
	CategoryRestaurant PlaceCategory = "restaurant"
	CategoryHotel      PlaceCategory = "hotel"
)

// Valid reports whether the category is one of the known values.
func (c PlaceCategory) Valid() bool {
	switch c {
	case CategoryAttraction, CategoryRestaurant, CategoryHotel:
		return true
	}

	return false
}

// Coordinate is a WGS84 position.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is within WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Point returns the coordinate as an orb point (lon, lat order).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Place is an immutable point of interest from the static catalog.
type Place struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Coordinate  Coordinate    `json:"coordinate"`
	Description string        `json:"description"`
	City        string        `json:"city"`
	Category    PlaceCategory `json:"category"`
}

// NearbyPlace is a catalog place decorated with the distance from the
// user's current location. Derived on every location update, never stored.
type NearbyPlace struct {
	Place
	DistanceKm float64 `json:"distance_km"`
}
