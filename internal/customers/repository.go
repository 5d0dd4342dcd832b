package customers

import (
	"context"

	"github.com/angelmondragon/aurana-storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists customer rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindBySecret loads the customer holding the given QR secret.
func (r *Repository) FindBySecret(ctx context.Context, secret string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "qr_code_secret = ?", secret).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateName sets the customer name for a secret and returns the affected row count.
func (r *Repository) UpdateName(ctx context.Context, secret, name string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("qr_code_secret = ?", secret).
		Update("customer_name", name)
	return res.RowsAffected, res.Error
}

// Count returns the number of customers.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}

// InsertSecrets inserts new customers for the given secrets, skipping any that
// already exist, and returns how many rows were created.
func (r *Repository) InsertSecrets(ctx context.Context, secrets []string) (int64, error) {
	if len(secrets) == 0 {
		return 0, nil
	}
	rows := make([]models.Customer, 0, len(secrets))
	for _, secret := range secrets {
		rows = append(rows, models.Customer{QRCodeSecret: secret})
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "qr_code_secret"}}, DoNothing: true}).
		Create(&rows)
	return res.RowsAffected, res.Error
}

// ListSecrets returns every secret in id order.
func (r *Repository) ListSecrets(ctx context.Context) ([]string, error) {
	var secrets []string
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Order("id ASC").
		Pluck("qr_code_secret", &secrets).
		Error
	return secrets, err
}

// FirstSecret returns the secret of the oldest customer.
func (r *Repository) FirstSecret(ctx context.Context) (string, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Order("id ASC").First(&customer).Error; err != nil {
		return "", err
	}
	return customer.QRCodeSecret, nil
}
