package model

import "time"

// DocumentModel is the GORM-specific struct for the 'documents' table. It
// backs the key-value store: one independent JSON document per key.
type DocumentModel struct {
	Key       string `gorm:"type:varchar(255);primary_key"`
	Value     []byte `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (DocumentModel) TableName() string {
	return "documents"
}
