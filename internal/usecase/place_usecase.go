package usecase

import (
	"context"

	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"
)

// PlaceUsecase defines the interface for destination discovery use cases
type PlaceUsecase interface {
	// SearchPlaces runs a destination search, preferring the search index
	// and falling back to the built-in catalog.
	SearchPlaces(ctx context.Context, q service.PlaceQuery) ([]entity.Place, error)

	// GetPlace returns a single destination by ID.
	GetPlace(ctx context.Context, id string) (*entity.Place, error)

	// ListPlacesByCity returns all catalogued destinations in a city.
	ListPlacesByCity(ctx context.Context, city string) ([]entity.Place, error)
}
