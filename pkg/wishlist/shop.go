package wishlist

import "context"

// ShopWishlist is a shop-scoped view over the store, so callers working
// inside a single storefront don't thread the shop id through every call.
type ShopWishlist struct {
	store  *Store
	shopID int64
}

// Shop returns a view of the store bound to one shop.
func (s *Store) Shop(shopID int64) *ShopWishlist {
	return &ShopWishlist{store: s, shopID: shopID}
}

// ShopID returns the shop this view is bound to.
func (w *ShopWishlist) ShopID() int64 {
	return w.shopID
}

// Add adds the product to this shop's wishlist.
func (w *ShopWishlist) Add(ctx context.Context, productID int64) error {
	return w.store.AddToShopWishlist(ctx, w.shopID, productID)
}

// Remove removes the identified item from this shop's wishlist.
func (w *ShopWishlist) Remove(ctx context.Context, itemID int64) error {
	return w.store.RemoveFromShopWishlist(ctx, w.shopID, itemID)
}

// Refresh replaces the cached sequence with the server's list.
func (w *ShopWishlist) Refresh(ctx context.Context) {
	w.store.RefreshShopWishlist(ctx, w.shopID)
}

// Contains reports cached membership for the product.
func (w *ShopWishlist) Contains(productID int64) bool {
	return w.store.IsInShopWishlist(w.shopID, productID)
}

// ItemByProduct returns the cached item for the product, if present.
func (w *ShopWishlist) ItemByProduct(productID int64) (WishlistItem, bool) {
	return w.store.WishlistItemByProductID(w.shopID, productID)
}

// Items returns a copy of the cached sequence.
func (w *ShopWishlist) Items() []WishlistItem {
	return w.store.ShopWishlistItems(w.shopID)
}

// Count returns the cached item count.
func (w *ShopWishlist) Count() int {
	return w.store.ShopWishlistCount(w.shopID)
}

// InFlight reports whether an operation is currently running for this shop.
func (w *ShopWishlist) InFlight() bool {
	return w.store.ShopInFlight(w.shopID)
}

// CheckStatus asks the backend directly, bypassing the cache.
func (w *ShopWishlist) CheckStatus(ctx context.Context, productID int64) bool {
	return w.store.CheckWishlistStatus(ctx, w.shopID, productID)
}

// CheckMembership resolves membership for a set of products.
func (w *ShopWishlist) CheckMembership(ctx context.Context, productIDs []int64) map[int64]bool {
	return w.store.CheckShopMembership(ctx, w.shopID, productIDs)
}

// Clear drops this shop's cached record.
func (w *ShopWishlist) Clear() {
	w.store.ClearShopWishlist(w.shopID)
}
