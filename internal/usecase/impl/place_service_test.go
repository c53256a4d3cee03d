package impl

import (
	"context"
	"testing"

	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"
	"yatra/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlaceSearcher serves canned results or a configured error.
type fakePlaceSearcher struct {
	places []entity.Place
	err    error
	called bool
}

func (s *fakePlaceSearcher) Search(_ context.Context, _ service.PlaceQuery) ([]entity.Place, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.places, nil
}

func TestSearchPlaces_PrefersIndex(t *testing.T) {
	searcher := &fakePlaceSearcher{places: []entity.Place{{ID: "indexed-hit", Name: "Indexed Hit"}}}
	svc := NewPlaceService(searcher, discardLogger())

	places, err := svc.SearchPlaces(context.Background(), service.PlaceQuery{Text: "anything"})
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "indexed-hit", places[0].ID)
	assert.True(t, searcher.called)
}

func TestSearchPlaces_FallsBackToCatalog(t *testing.T) {
	searcher := &fakePlaceSearcher{err: errors.New("cluster unreachable")}
	svc := NewPlaceService(searcher, discardLogger())

	places, err := svc.SearchPlaces(context.Background(), service.PlaceQuery{Text: "Taj"})
	require.NoError(t, err)
	require.NotEmpty(t, places)
	assert.Equal(t, "Taj Mahal", places[0].Name)
}

func TestSearchPlaces_NilSearcherUsesCatalog(t *testing.T) {
	svc := NewPlaceService(nil, discardLogger())

	places, err := svc.SearchPlaces(context.Background(), service.PlaceQuery{City: "Jaipur"})
	require.NoError(t, err)
	require.NotEmpty(t, places)
	for _, p := range places {
		assert.Equal(t, "Jaipur", p.City)
	}
}

func TestSearchPlaces_ProximityFilterOrdersNearestFirst(t *testing.T) {
	svc := NewPlaceService(nil, discardLogger())

	// Centered on India Gate: Delhi landmarks stay, Agra is ~180 km away.
	places, err := svc.SearchPlaces(context.Background(), service.PlaceQuery{
		Near:     entity.Coordinate{Latitude: 28.6129, Longitude: 77.2295},
		WithinKm: 10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, places)

	assert.Equal(t, "delhi-india-gate", places[0].ID)
	for _, p := range places {
		assert.NotEqual(t, "agra-taj-mahal", p.ID)
	}
}

func TestGetPlace(t *testing.T) {
	svc := NewPlaceService(nil, discardLogger())

	place, err := svc.GetPlace(context.Background(), "agra-taj-mahal")
	require.NoError(t, err)
	assert.Equal(t, "Taj Mahal", place.Name)

	_, err = svc.GetPlace(context.Background(), "atlantis")
	assert.Error(t, err)
}

func TestListPlacesByCity(t *testing.T) {
	svc := NewPlaceService(nil, discardLogger())

	places, err := svc.ListPlacesByCity(context.Background(), "varanasi")
	require.NoError(t, err)
	assert.NotEmpty(t, places)
}
