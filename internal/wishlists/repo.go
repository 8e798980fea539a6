package wishlists

import (
	"context"
	"strings"

	"github.com/storely/wishsync/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates wishlist persistence. Rows are soft-deleted, so
// every query filters on is_deleted.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert creates a wishlist row and fills its generated id and timestamps.
func (r *Repository) Insert(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindActiveByProduct returns the user's live entry for the product, if any.
func (r *Repository) FindActiveByProduct(ctx context.Context, userID, shopID, productID int64) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND shop_id = ? AND product_id = ? AND is_deleted = ?", userID, shopID, productID, false).
		First(&item).
		Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindActiveOwned returns the entry only when it belongs to the user, lives
// in the shop, and has not been removed. Anything else reads as not found.
func (r *Repository) FindActiveOwned(ctx context.Context, userID, shopID, itemID int64) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND shop_id = ? AND is_deleted = ?", itemID, userID, shopID, false).
		First(&item).
		Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SoftDelete flips the entry's is_deleted flag instead of dropping the row.
func (r *Repository) SoftDelete(ctx context.Context, itemID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("id = ?", itemID).
		Update("is_deleted", true).
		Error
}

// ListActive returns the user's live entries for the shop joined with their
// product snapshots, oldest first so insertion order is preserved.
func (r *Repository) ListActive(ctx context.Context, userID, shopID int64) ([]itemRecord, error) {
	selectColumns := []string{
		"wi.id AS item_id",
		"wi.user_id",
		"wi.shop_id",
		"wi.product_id",
		"wi.is_deleted",
		"wi.created_at AS item_created_at",
		"wi.updated_at AS item_updated_at",
		"p.name AS product_name",
		"p.sku AS product_sku",
		"p.price AS product_price",
		"p.discount_percent AS product_discount_percent",
		"p.special_price AS product_special_price",
		"p.image_url AS product_image_url",
		"p.stock AS product_stock",
	}

	var rows []itemRecord
	if err := r.db.WithContext(ctx).
		Table("wishlist_items wi").
		Select(strings.Join(selectColumns, ", ")).
		Joins("JOIN products p ON p.id = wi.product_id").
		Where("wi.user_id = ? AND wi.shop_id = ? AND wi.is_deleted = ?", userID, shopID, false).
		Order("wi.id ASC").
		Scan(&rows).
		Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ExistsActive reports whether the user has a live entry for the product.
func (r *Repository) ExistsActive(ctx context.Context, userID, shopID, productID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ? AND shop_id = ? AND product_id = ? AND is_deleted = ?", userID, shopID, productID, false).
		Count(&count).
		Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
