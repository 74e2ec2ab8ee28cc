package repository

import (
	"fmt"

	"gorm.io/gorm"

	"docqa/internal/model"
)

type EmbeddingRecordRepository struct {
	db *gorm.DB
}

func NewEmbeddingRecordRepository(db *gorm.DB) *EmbeddingRecordRepository {
	return &EmbeddingRecordRepository{db: db}
}

// CreateBatch persists all records in a single transaction, so readers
// either see the whole batch or none of it.
func (r *EmbeddingRecordRepository) CreateBatch(records []model.EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := r.db.Create(&records).Error; err != nil {
		return fmt.Errorf("create embedding records batch failed: %w", err)
	}
	return nil
}

// ListAll returns every stored record in insertion order.
func (r *EmbeddingRecordRepository) ListAll() ([]model.EmbeddingRecord, error) {
	var records []model.EmbeddingRecord
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list embedding records failed: %w", err)
	}
	return records, nil
}

// Count reports how many records have ever been stored.
func (r *EmbeddingRecordRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&model.EmbeddingRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count embedding records failed: %w", err)
	}
	return n, nil
}
