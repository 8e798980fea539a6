package wishlists

import (
	"context"
	"errors"

	products "github.com/storely/wishsync/internal/products"
	"github.com/storely/wishsync/pkg/db/models"
	pkgerrors "github.com/storely/wishsync/pkg/errors"
	"github.com/storely/wishsync/pkg/wishlist"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	ProductRepo  *products.Repository
}

// Service exposes business rules for wishlist management. All operations are
// scoped to the authenticated user and one shop.
type Service interface {
	AddItem(ctx context.Context, userID, shopID, productID int64) (wishlist.WishlistItem, error)
	RemoveItem(ctx context.Context, userID, shopID, itemID int64) error
	ListItems(ctx context.Context, userID, shopID int64) (wishlist.ListData, error)
	CheckItem(ctx context.Context, userID, shopID, productID int64) (wishlist.CheckData, error)
}

type service struct {
	wishlistRepo *Repository
	productRepo  *products.Repository
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		productRepo:  params.ProductRepo,
	}, nil
}

// AddItem ensures the product exists in the shop, rejects duplicate live
// entries, and returns the stored item with its product snapshot.
func (s *service) AddItem(ctx context.Context, userID, shopID, productID int64) (wishlist.WishlistItem, error) {
	if productID <= 0 {
		return wishlist.WishlistItem{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.productRepo.FindByShopAndID(ctx, shopID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return wishlist.WishlistItem{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return wishlist.WishlistItem{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if _, err := s.wishlistRepo.FindActiveByProduct(ctx, userID, shopID, productID); err == nil {
		return wishlist.WishlistItem{}, pkgerrors.New(pkgerrors.CodeConflict, "item already in wishlist")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return wishlist.WishlistItem{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing item")
	}

	item := &models.WishlistItem{
		UserID:    userID,
		ShopID:    shopID,
		ProductID: productID,
	}
	if err := s.wishlistRepo.Insert(ctx, item); err != nil {
		return wishlist.WishlistItem{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert wishlist item")
	}
	return toItemDTO(item, product), nil
}

// RemoveItem soft-deletes the entry. Entries the user does not own, entries
// from other shops, and already removed entries all read as not found.
func (s *service) RemoveItem(ctx context.Context, userID, shopID, itemID int64) error {
	item, err := s.wishlistRepo.FindActiveOwned(ctx, userID, shopID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist item")
	}
	if err := s.wishlistRepo.SoftDelete(ctx, item.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}
	return nil
}

// ListItems returns the user's live entries for the shop in insertion order.
func (s *service) ListItems(ctx context.Context, userID, shopID int64) (wishlist.ListData, error) {
	rows, err := s.wishlistRepo.ListActive(ctx, userID, shopID)
	if err != nil {
		return wishlist.ListData{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist items")
	}

	items := make([]wishlist.WishlistItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDTO())
	}
	return wishlist.ListData{
		WishlistItems: items,
		TotalItems:    len(items),
	}, nil
}

// CheckItem answers the membership question for one product.
func (s *service) CheckItem(ctx context.Context, userID, shopID, productID int64) (wishlist.CheckData, error) {
	if productID <= 0 {
		return wishlist.CheckData{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	exists, err := s.wishlistRepo.ExistsActive(ctx, userID, shopID, productID)
	if err != nil {
		return wishlist.CheckData{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wishlist item")
	}
	return wishlist.CheckData{
		IsInWishlist: exists,
		ShopID:       shopID,
		ProductID:    productID,
	}, nil
}
