package wishlist

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSnapshot is the denormalized product view captured when an item is
// added. It is never mutated client-side after creation.
type ProductSnapshot struct {
	Name            string           `json:"name"`
	SKU             string           `json:"sku"`
	Price           decimal.Decimal  `json:"price"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	SpecialPrice    *decimal.Decimal `json:"special_price,omitempty"`
	ImageURL        *string          `json:"image_url,omitempty"`
	Stock           int              `json:"stock"`
}

// WishlistItem is one product bookmarked by the current user inside one shop.
// Identifiers are server-assigned.
type WishlistItem struct {
	WishlistItemID int64           `json:"wishlist_item_id"`
	UserID         int64           `json:"user_id"`
	ShopID         int64           `json:"shop_id"`
	ShopProductID  int64           `json:"shop_product_id"`
	Product        ProductSnapshot `json:"product"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	IsDeleted      bool            `json:"is_deleted"`
}

// ListData is the container the list endpoint wraps its items in.
type ListData struct {
	WishlistItems []WishlistItem `json:"wishlist_items"`
	TotalItems    int            `json:"total_items"`
}

// CheckData is the payload of the membership-check endpoint.
type CheckData struct {
	IsInWishlist bool  `json:"is_in_wishlist"`
	ShopID       int64 `json:"shop_id"`
	ProductID    int64 `json:"product_id"`
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
}
