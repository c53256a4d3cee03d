package impl

import (
	"context"
	"log/slog"
	"sort"

	"yatra/internal/catalog"
	"yatra/internal/domain/entity"
	domainerrors "yatra/internal/domain/errors"
	"yatra/internal/domain/service"
	"yatra/internal/geo"
	"yatra/internal/usecase"

	"github.com/paulmach/orb"
)

type placeService struct {
	searcher service.PlaceSearcher
	logger   *slog.Logger
}

// NewPlaceService creates the destination discovery use case. The searcher
// may be nil when no search cluster is configured; the built-in catalog then
// serves every query.
func NewPlaceService(searcher service.PlaceSearcher, logger *slog.Logger) usecase.PlaceUsecase {
	return &placeService{
		searcher: searcher,
		logger:   logger,
	}
}

// SearchPlaces prefers the search index and falls back to the catalog. The
// proximity filter is applied here so index hits and catalog results honor
// it the same way.
func (s *placeService) SearchPlaces(ctx context.Context, q service.PlaceQuery) ([]entity.Place, error) {
	if s.searcher != nil {
		places, err := s.searcher.Search(ctx, q)
		if err == nil {
			return filterNearby(places, q), nil
		}
		s.logger.Warn("index search failed, serving from catalog", slog.Any("error", err))
	}

	return filterNearby(catalog.Search(q), q), nil
}

// filterNearby drops places outside the query radius and orders the rest
// nearest first. A query without a proximity constraint passes through.
func filterNearby(places []entity.Place, q service.PlaceQuery) []entity.Place {
	if q.WithinKm <= 0 || !q.Near.Valid() {
		return places
	}

	bound := geo.BoundAround(q.Near, q.WithinKm)
	kept := make([]entity.Place, 0, len(places))
	for _, p := range places {
		if !bound.Contains(orb.Point{p.Coordinate.Longitude, p.Coordinate.Latitude}) {
			continue
		}
		if geo.DistanceKm(q.Near, p.Coordinate) <= q.WithinKm {
			kept = append(kept, p)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return geo.DistanceKm(q.Near, kept[i].Coordinate) < geo.DistanceKm(q.Near, kept[j].Coordinate)
	})

	return kept
}

// GetPlace returns a single catalogued destination.
func (s *placeService) GetPlace(ctx context.Context, id string) (*entity.Place, error) {
	place, ok := catalog.ByID(id)
	if !ok {
		return nil, domainerrors.ErrPlaceNotFound.WithDetails("no destination with id " + id)
	}

	return &place, nil
}

// ListPlacesByCity returns all catalogued destinations in a city.
func (s *placeService) ListPlacesByCity(ctx context.Context, city string) ([]entity.Place, error) {
	return catalog.ByCity(city), nil
}
