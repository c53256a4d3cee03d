package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"yatra/config"
	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearcher(t *testing.T, handler http.HandlerFunc) service.PlaceSearcher {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	searcher, err := NewElasticSearcher(&config.ElasticConfig{
		Addresses: []string{srv.URL},
		Index:     "places-test",
	}, slog.Default())
	require.NoError(t, err)

	return searcher
}

func TestSearch_DecodesHits(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "places-test")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 10, body["size"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"hits": map[string]any{
				"hits": []map[string]any{
					{"_source": map[string]any{"id": "taj-mahal", "name": "Taj Mahal", "city": "Agra", "category": "attraction"}},
					{"_source": map[string]any{"id": "agra-fort", "name": "Agra Fort", "city": "Agra", "category": "attraction"}},
				},
			},
		})
	})

	places, err := searcher.Search(context.Background(), service.PlaceQuery{Text: "taj"})
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "taj-mahal", places[0].ID)
	assert.Equal(t, entity.CategoryAttraction, places[0].Category)
}

func TestSearch_ErrorStatusFails(t *testing.T) {
	searcher := newTestSearcher(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"index_not_found_exception"}`, http.StatusNotFound)
	})

	_, err := searcher.Search(context.Background(), service.PlaceQuery{Text: "taj"})
	assert.Error(t, err)
}

func TestNewElasticSearcher_RequiresAddresses(t *testing.T) {
	_, err := NewElasticSearcher(&config.ElasticConfig{}, slog.Default())
	assert.Error(t, err)

	_, err = NewElasticSearcher(nil, slog.Default())
	assert.Error(t, err)
}

func TestBuildQuery_Filters(t *testing.T) {
	q := buildQuery(service.PlaceQuery{
		Text:     "palace",
		City:     "Jaipur",
		Category: entity.CategoryAttraction,
	}, 5)

	assert.Equal(t, 5, q["size"])

	boolQuery := q["query"].(map[string]any)["bool"].(map[string]any)
	assert.Len(t, boolQuery["must"], 1)
	assert.Len(t, boolQuery["filter"], 2)
}

func TestBuildQuery_EmptyTextMatchesAll(t *testing.T) {
	q := buildQuery(service.PlaceQuery{}, 10)

	boolQuery := q["query"].(map[string]any)["bool"].(map[string]any)
	must := boolQuery["must"].([]map[string]any)
	require.Len(t, must, 1)
	assert.Contains(t, must[0], "match_all")
}
