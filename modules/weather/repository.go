package weather

import (
	"fmt"

	domain "github.com/example/taskmanager/domain/weather"
	"gorm.io/gorm"
)

// Repository provides access to weather log storage. Logs are append-only:
// there is deliberately no update or delete.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new weather log repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends a new weather log row.
func (r *Repository) Create(log *domain.Log) error {
	if err := r.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to create weather log: %w", err)
	}
	return nil
}

// FindRecent retrieves the most recent weather logs, newest first.
func (r *Repository) FindRecent(limit int) ([]*domain.Log, error) {
	var logs []*domain.Log
	if err := r.db.Order("timestamp DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to find weather logs: %w", err)
	}
	return logs, nil
}

// Count returns the number of logged lookups.
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Log{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count weather logs: %w", err)
	}
	return count, nil
}
