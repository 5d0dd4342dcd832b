package catalog

import (
	"context"

	"github.com/angelmondragon/aurana-storefront/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads catalog rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active products in display order.
func (r *Repository) ListActive(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("position ASC").
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}
