package models

import "time"

// WishlistItem links a user to a bookmarked product within one shop. Rows are
// soft-deleted; the active (user, shop, product) triple is kept unique by the
// service layer.
type WishlistItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;index:wishlist_items_user_shop_idx"`
	ShopID    int64     `gorm:"column:shop_id;not null;index:wishlist_items_user_shop_idx"`
	ProductID int64     `gorm:"column:product_id;not null;index:wishlist_items_product_id_idx"`
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
