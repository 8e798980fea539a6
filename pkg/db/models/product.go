package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the shop-scoped catalog row wishlist snapshots are taken from.
type Product struct {
	ID              int64            `gorm:"column:id;primaryKey;autoIncrement"`
	ShopID          int64            `gorm:"column:shop_id;not null;index:products_shop_id_idx;uniqueIndex:products_shop_sku_key"`
	Name            string           `gorm:"column:name;not null"`
	SKU             string           `gorm:"column:sku;not null;uniqueIndex:products_shop_sku_key"`
	Price           decimal.Decimal  `gorm:"column:price;type:numeric;not null"`
	DiscountPercent decimal.Decimal  `gorm:"column:discount_percent;type:numeric;not null;default:0"`
	SpecialPrice    *decimal.Decimal `gorm:"column:special_price;type:numeric"`
	ImageURL        *string          `gorm:"column:image_url"`
	Stock           int              `gorm:"column:stock;not null;default:0"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
