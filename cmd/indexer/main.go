// Command indexer bulk-loads the destination catalog into Elasticsearch so
// the API can serve full-text place search.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"yatra/config"
	"yatra/internal/catalog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

const mapping = `{
	"settings": {
		"index": {
			"max_result_window": 20000
		}
	},
	"mappings": {
		"properties": {
			"name": {
				"type": "text"
			},
			"description": {
				"type": "text"
			},
			"city": {
				"type": "text",
				"fields": {
					"keyword": {
						"type": "keyword"
					}
				}
			},
			"category": {
				"type": "text",
				"fields": {
					"keyword": {
						"type": "keyword"
					}
				}
			},
			"coordinate": {
				"properties": {
					"latitude": {
						"type": "double"
					},
					"longitude": {
						"type": "double"
					}
				}
			}
		}
	}
}`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.New()
	if err != nil {
		logger.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Elastic == nil || len(cfg.Elastic.Addresses) == 0 {
		logger.Error("Elasticsearch is not configured")
		os.Exit(1)
	}

	indexName := cfg.Elastic.Index
	if indexName == "" {
		indexName = "places"
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Elastic.Addresses,
	})
	if err != nil {
		logger.Error("Failed to create elasticsearch client", slog.Any("error", err))
		os.Exit(1)
	}

	exist, err := es.Indices.Exists([]string{indexName})
	if err != nil {
		logger.Error("Failed to check index", slog.Any("error", err))
		os.Exit(1)
	}
	defer exist.Body.Close()
	if exist.StatusCode != 200 {
		if _, err := es.Indices.Create(indexName, es.Indices.Create.WithBody(strings.NewReader(mapping))); err != nil {
			logger.Error("Failed to create index", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Created index", slog.String("index", indexName))
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         indexName,
		Client:        es,
		NumWorkers:    runtime.NumCPU(),
		FlushBytes:    5e+6,
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		logger.Error("Failed to create bulk indexer", slog.Any("error", err))
		os.Exit(1)
	}

	var indexed uint64
	ctx := context.Background()

	for _, place := range catalog.All() {
		data, err := json.Marshal(place)
		if err != nil {
			logger.Error("Failed to encode place", slog.String("id", place.ID), slog.Any("error", err))
			os.Exit(1)
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: place.ID,
			Body:       bytes.NewReader(data),
			OnSuccess: func(_ context.Context, _ esutil.BulkIndexerItem, _ esutil.BulkIndexerResponseItem) {
				atomic.AddUint64(&indexed, 1)
			},
			OnFailure: func(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					logger.Error("Failed to index place", slog.String("id", item.DocumentID), slog.Any("error", err))
				} else {
					logger.Error("Failed to index place",
						slog.String("id", item.DocumentID),
						slog.String("type", res.Error.Type),
						slog.String("reason", res.Error.Reason),
					)
				}
			},
		})
		if err != nil {
			logger.Error("Failed to queue place", slog.String("id", place.ID), slog.Any("error", err))
			os.Exit(1)
		}
	}

	if err := bi.Close(ctx); err != nil {
		logger.Error("Failed to flush bulk indexer", slog.Any("error", err))
		os.Exit(1)
	}

	stats := bi.Stats()
	logger.Info("Catalog indexed",
		slog.String("index", indexName),
		slog.Uint64("indexed", atomic.LoadUint64(&indexed)),
		slog.Uint64("failed", stats.NumFailed),
	)
}
