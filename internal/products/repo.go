package products

import (
	"context"

	"github.com/storely/wishsync/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates product persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByShopAndID loads a product scoped to its shop. Products from other
// shops are invisible, gorm.ErrRecordNotFound included.
func (r *Repository) FindByShopAndID(ctx context.Context, shopID, productID int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND id = ?", shopID, productID).
		First(&product).
		Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a product row. Used by seeding and tests.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}
