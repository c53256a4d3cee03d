package service

import (
	"context"

	"yatra/internal/domain/entity"
)

// PlaceQuery is a full-text destination search with optional filters.
// When Near is a valid coordinate and WithinKm is positive, results are
// restricted to that radius and ordered nearest first.
type PlaceQuery struct {
	Text     string
	City     string
	Category entity.PlaceCategory
	Near     entity.Coordinate
	WithinKm float64
	Limit    int
}

// PlaceSearcher runs destination searches against an external index.
type PlaceSearcher interface {
	Search(ctx context.Context, q PlaceQuery) ([]entity.Place, error)
}
