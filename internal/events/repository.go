package events

import (
	"context"

	"gorm.io/gorm"

	"github.com/aromacraft/storefront-backend/pkg/db/models"
)

// Repository persists event registrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends a registration.
func (r *Repository) Create(ctx context.Context, registration *models.EventRegistration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

// ListByEvent returns registrations newest first; an empty title returns
// all of them.
func (r *Repository) ListByEvent(ctx context.Context, eventTitle string) ([]models.EventRegistration, error) {
	qb := r.db.WithContext(ctx).Model(&models.EventRegistration{})
	if eventTitle != "" {
		qb = qb.Where("event_title = ?", eventTitle)
	}
	var registrations []models.EventRegistration
	if err := qb.Order("created_at DESC").Find(&registrations).Error; err != nil {
		return nil, err
	}
	return registrations, nil
}
