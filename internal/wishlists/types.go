package wishlists

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storely/wishsync/pkg/db/models"
	"github.com/storely/wishsync/pkg/wishlist"
)

// itemRecord is the joined wishlist row plus its product snapshot, the shape
// the list query scans into.
type itemRecord struct {
	ItemID                 int64            `gorm:"column:item_id"`
	UserID                 int64            `gorm:"column:user_id"`
	ShopID                 int64            `gorm:"column:shop_id"`
	ProductID              int64            `gorm:"column:product_id"`
	IsDeleted              bool             `gorm:"column:is_deleted"`
	ItemCreatedAt          time.Time        `gorm:"column:item_created_at"`
	ItemUpdatedAt          time.Time        `gorm:"column:item_updated_at"`
	ProductName            string           `gorm:"column:product_name"`
	ProductSKU             string           `gorm:"column:product_sku"`
	ProductPrice           decimal.Decimal  `gorm:"column:product_price"`
	ProductDiscountPercent decimal.Decimal  `gorm:"column:product_discount_percent"`
	ProductSpecialPrice    *decimal.Decimal `gorm:"column:product_special_price"`
	ProductImageURL        *string          `gorm:"column:product_image_url"`
	ProductStock           int              `gorm:"column:product_stock"`
}

func (r itemRecord) toDTO() wishlist.WishlistItem {
	return wishlist.WishlistItem{
		WishlistItemID: r.ItemID,
		UserID:         r.UserID,
		ShopID:         r.ShopID,
		ShopProductID:  r.ProductID,
		Product: wishlist.ProductSnapshot{
			Name:            r.ProductName,
			SKU:             r.ProductSKU,
			Price:           r.ProductPrice,
			DiscountPercent: r.ProductDiscountPercent,
			SpecialPrice:    r.ProductSpecialPrice,
			ImageURL:        r.ProductImageURL,
			Stock:           r.ProductStock,
		},
		CreatedAt: r.ItemCreatedAt,
		UpdatedAt: r.ItemUpdatedAt,
		IsDeleted: r.IsDeleted,
	}
}

func toItemDTO(item *models.WishlistItem, product *models.Product) wishlist.WishlistItem {
	return wishlist.WishlistItem{
		WishlistItemID: item.ID,
		UserID:         item.UserID,
		ShopID:         item.ShopID,
		ShopProductID:  item.ProductID,
		Product: wishlist.ProductSnapshot{
			Name:            product.Name,
			SKU:             product.SKU,
			Price:           product.Price,
			DiscountPercent: product.DiscountPercent,
			SpecialPrice:    product.SpecialPrice,
			ImageURL:        product.ImageURL,
			Stock:           product.Stock,
		},
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
		IsDeleted: item.IsDeleted,
	}
}
