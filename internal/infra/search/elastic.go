// Package search runs destination queries against an Elasticsearch index.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"yatra/config"
	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"
	"yatra/internal/errors"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	defaultIndex = "places"
	defaultLimit = 10
	maxLimit     = 50
)

type elasticSearcher struct {
	client *elasticsearch.Client
	index  string
	logger *slog.Logger
}

// NewElasticSearcher creates a place searcher over an Elasticsearch cluster.
func NewElasticSearcher(cfg *config.ElasticConfig, logger *slog.Logger) (service.PlaceSearcher, error) {
	if cfg == nil || len(cfg.Addresses) == 0 {
		return nil, errors.New("elasticsearch is not configured")
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create elasticsearch client")
	}

	index := cfg.Index
	if index == "" {
		index = defaultIndex
	}

	return &elasticSearcher{
		client: client,
		index:  index,
		logger: logger,
	}, nil
}

type searchHit struct {
	Source entity.Place `json:"_source"`
}

type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

// Search runs a full-text query with optional city and category filters.
func (s *elasticSearcher) Search(ctx context.Context, q service.PlaceQuery) ([]entity.Place, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	body, err := json.Marshal(buildQuery(q, limit))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode search query")
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.Errorf("search returned %s", res.Status())
	}

	return decodeHits(res)
}

func buildQuery(q service.PlaceQuery, limit int) map[string]any {
	must := make([]map[string]any, 0, 1)
	filter := make([]map[string]any, 0, 2)

	if text := strings.TrimSpace(q.Text); text != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":     text,
				"fields":    []string{"name^3", "city^2", "description"},
				"fuzziness": "AUTO",
			},
		})
	} else {
		must = append(must, map[string]any{"match_all": map[string]any{}})
	}
	if q.City != "" {
		filter = append(filter, map[string]any{
			"term": map[string]any{"city.keyword": q.City},
		})
	}
	if q.Category != "" {
		filter = append(filter, map[string]any{
			"term": map[string]any{"category": string(q.Category)},
		})
	}

	return map[string]any{
		"size": limit,
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": filter,
			},
		},
	}
}

func decodeHits(res *esapi.Response) ([]entity.Place, error) {
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read search response")
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode search response")
	}

	places := make([]entity.Place, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		places = append(places, hit.Source)
	}

	return places, nil
}
