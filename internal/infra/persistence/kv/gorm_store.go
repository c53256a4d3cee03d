// Package kv implements the key-value document store over PostgreSQL, with
// an in-memory variant for tests and local development.
package kv

import (
	"context"

	"yatra/internal/domain/service"
	"yatra/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStore persists each key as one row in the 'documents' table.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore is the constructor for gormStore.
func NewGormStore(db *gorm.DB) service.KeyValueStore {
	return &gormStore{
		db: db,
	}
}

// Get returns the raw document and whether the key exists.
func (s *gormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var docM model.DocumentModel

	if err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&docM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}

		return nil, false, errors.Wrap(err, "failed to read document")
	}

	return docM.Value, true, nil
}

// Put stores the document, replacing any previous value.
func (s *gormStore) Put(ctx context.Context, key string, value []byte) error {
	docM := &model.DocumentModel{Key: key, Value: value}

	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(docM).Error; err != nil {
		return errors.Wrap(err, "failed to write document")
	}

	return nil
}

// Delete removes the key; deleting a missing key is not an error.
func (s *gormStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.DocumentModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete document")
	}

	return nil
}
