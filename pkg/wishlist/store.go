package wishlist

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/storely/wishsync/pkg/enums"
	pkgerrors "github.com/storely/wishsync/pkg/errors"
	"github.com/storely/wishsync/pkg/logger"
	"github.com/storely/wishsync/pkg/metrics"
	"github.com/storely/wishsync/pkg/notify"
)

// User-facing notices emitted by the store.
const (
	NoticeSignInRequired = "please sign in to manage your wishlist"
	NoticeCustomersOnly  = "only customers can manage wishlists"
	NoticeItemAdded      = "added to wishlist"
	NoticeItemRemoved    = "removed from wishlist"
)

// RemoteAPI is the network boundary the store delegates to.
type RemoteAPI interface {
	Add(ctx context.Context, shopID, productID int64) (*WishlistItem, error)
	Remove(ctx context.Context, shopID, itemID int64) error
	List(ctx context.Context, shopID int64) ([]WishlistItem, error)
	CheckStatus(ctx context.Context, shopID, productID int64) bool
	CheckMembership(ctx context.Context, shopID int64, productIDs []int64) map[int64]bool
}

// SessionReader exposes the authenticated caller the store authorizes against.
type SessionReader interface {
	AccessToken() string
	Role() enums.UserRole
}

// shopState is one shop's cached wishlist. items is replaced wholesale, never
// mutated in place. opMu serializes state transitions for this shop; the
// inFlight flag stays advisory, for UIs that want a busy indicator.
type shopState struct {
	opMu     sync.Mutex
	items    []WishlistItem
	inFlight bool
}

// StoreParams groups dependencies for the wishlist store.
type StoreParams struct {
	Client   RemoteAPI
	Session  SessionReader
	Notifier notify.Notifier
	Logger   *logger.Logger
	Metrics  *metrics.WishlistMetrics
}

// Store is the single source of truth for wishlist membership in the running
// client session. State is per shop: absence of a shop's record means "not
// yet loaded", which is distinct from "loaded and empty". Records are created
// lazily by mutating or fetching operations; pure reads never materialize
// one. Operations against one shop are serialized; different shops proceed
// in parallel.
type Store struct {
	mu    sync.RWMutex
	shops map[int64]*shopState

	client   RemoteAPI
	session  SessionReader
	notifier notify.Notifier
	logg     *logger.Logger
	metrics  *metrics.WishlistMetrics
}

// NewStore builds a wishlist store with the required dependencies.
func NewStore(params StoreParams) (*Store, error) {
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "remote client is required")
	}
	if params.Session == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session is required")
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Store{
		shops:    make(map[int64]*shopState),
		client:   params.Client,
		session:  params.Session,
		notifier: notifier,
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

// AddToShopWishlist adds the product to the shop's wishlist. The cached
// sequence is updated only after the server confirms the item, so a failed
// add never needs a rollback. Unauthorized callers get a notice and a no-op,
// not an error; network failures notify and are returned so callers can
// react.
func (s *Store) AddToShopWishlist(ctx context.Context, shopID, productID int64) error {
	if !s.authorize(ctx) {
		return nil
	}

	st := s.ensureShop(shopID)
	st.opMu.Lock()
	defer st.opMu.Unlock()

	s.setInFlight(shopID, true)
	defer s.setInFlight(shopID, false)

	started := time.Now()
	item, err := s.client.Add(ctx, shopID, productID)
	s.metrics.ObserveDuration("add", time.Since(started))
	if err != nil {
		s.metrics.IncFailure("add")
		s.notifier.Error(ctx, noticeFor(err, "could not add item to wishlist"))
		return err
	}

	s.mu.Lock()
	current := s.ensureShopLocked(shopID)
	next := make([]WishlistItem, 0, len(current.items)+1)
	next = append(next, current.items...)
	next = append(next, *item)
	current.items = next
	s.mu.Unlock()

	s.notifier.Success(ctx, NoticeItemAdded)
	return nil
}

// RemoveFromShopWishlist removes the identified item from the shop's
// wishlist. Filtering an id that is no longer cached is a harmless no-op, so
// a repeated removal cannot fail locally.
func (s *Store) RemoveFromShopWishlist(ctx context.Context, shopID, itemID int64) error {
	if !s.authorize(ctx) {
		return nil
	}

	st := s.ensureShop(shopID)
	st.opMu.Lock()
	defer st.opMu.Unlock()

	s.setInFlight(shopID, true)
	defer s.setInFlight(shopID, false)

	started := time.Now()
	err := s.client.Remove(ctx, shopID, itemID)
	s.metrics.ObserveDuration("remove", time.Since(started))
	if err != nil {
		s.metrics.IncFailure("remove")
		s.notifier.Error(ctx, noticeFor(err, "could not remove item from wishlist"))
		return err
	}

	s.mu.Lock()
	current := s.ensureShopLocked(shopID)
	next := make([]WishlistItem, 0, len(current.items))
	for _, existing := range current.items {
		if existing.WishlistItemID != itemID {
			next = append(next, existing)
		}
	}
	current.items = next
	s.mu.Unlock()

	s.notifier.Success(ctx, NoticeItemRemoved)
	return nil
}

// RefreshShopWishlist replaces the shop's cached sequence with the server's
// list. This is a background refresh: unauthorized callers are skipped
// silently, and a fetch failure keeps the last known good state.
func (s *Store) RefreshShopWishlist(ctx context.Context, shopID int64) {
	if strings.TrimSpace(s.session.AccessToken()) == "" || s.session.Role() != enums.RoleCustomer {
		return
	}

	st := s.ensureShop(shopID)
	st.opMu.Lock()
	defer st.opMu.Unlock()

	s.setInFlight(shopID, true)
	defer s.setInFlight(shopID, false)

	started := time.Now()
	items, err := s.client.List(ctx, shopID)
	s.metrics.ObserveDuration("refresh", time.Since(started))
	if err != nil {
		s.metrics.IncFailure("refresh")
		s.notifier.Error(ctx, noticeFor(err, "could not load wishlist"))
		if s.logg != nil {
			s.logg.WarnErr(s.logg.WithShopID(ctx, shopID), "wishlist refresh failed, keeping cached state", err)
		}
		return
	}

	s.mu.Lock()
	s.ensureShopLocked(shopID).items = items
	s.mu.Unlock()
}

// IsInShopWishlist reports whether the product is in the shop's cached
// wishlist. A shop with no record reads as false, never as an error.
func (s *Store) IsInShopWishlist(shopID, productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.shops[shopID]
	if !ok {
		return false
	}
	for _, item := range st.items {
		if item.ShopProductID == productID && !item.IsDeleted {
			return true
		}
	}
	return false
}

// WishlistItemByProductID returns the first cached item for the product,
// which UIs need to learn the item id required for removal.
func (s *Store) WishlistItemByProductID(shopID, productID int64) (WishlistItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.shops[shopID]
	if !ok {
		return WishlistItem{}, false
	}
	for _, item := range st.items {
		if item.ShopProductID == productID && !item.IsDeleted {
			return item, true
		}
	}
	return WishlistItem{}, false
}

// CheckWishlistStatus bypasses the cache and asks the backend directly, for
// callers that suspect local state is stale. Failures read as false.
func (s *Store) CheckWishlistStatus(ctx context.Context, shopID, productID int64) bool {
	return s.client.CheckStatus(ctx, shopID, productID)
}

// CheckShopMembership resolves membership for a set of products in bounded
// concurrent batches. Every input id appears in the result.
func (s *Store) CheckShopMembership(ctx context.Context, shopID int64, productIDs []int64) map[int64]bool {
	return s.client.CheckMembership(ctx, shopID, productIDs)
}

// ShopWishlistItems returns a copy of the shop's cached sequence.
func (s *Store) ShopWishlistItems(shopID int64) []WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.shops[shopID]
	if !ok {
		return nil
	}
	items := make([]WishlistItem, len(st.items))
	copy(items, st.items)
	return items
}

// ShopWishlistCount returns the size of the shop's cached sequence, zero when
// the shop is unloaded.
func (s *Store) ShopWishlistCount(shopID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.shops[shopID]
	if !ok {
		return 0
	}
	return len(st.items)
}

// ShopInFlight reports the advisory busy flag for the shop.
func (s *Store) ShopInFlight(shopID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.shops[shopID]
	if !ok {
		return false
	}
	return st.inFlight
}

// ClearShopWishlist drops one shop's record. Local only, no network.
func (s *Store) ClearShopWishlist(shopID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.shops, shopID)
}

// ClearAllShopWishlists wipes every shop's record, for sign-out or role
// change.
func (s *Store) ClearAllShopWishlists() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shops = make(map[int64]*shopState)
}

// authorize checks the mutation precondition: a non-empty token and the
// customer role. Failures notify the user and stop the operation before any
// network call.
func (s *Store) authorize(ctx context.Context) bool {
	if strings.TrimSpace(s.session.AccessToken()) == "" {
		s.notifier.Error(ctx, NoticeSignInRequired)
		return false
	}
	if s.session.Role() != enums.RoleCustomer {
		s.notifier.Error(ctx, NoticeCustomersOnly)
		return false
	}
	return true
}

func (s *Store) ensureShop(shopID int64) *shopState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureShopLocked(shopID)
}

func (s *Store) ensureShopLocked(shopID int64) *shopState {
	st, ok := s.shops[shopID]
	if !ok {
		st = &shopState{}
		s.shops[shopID] = st
	}
	return st
}

func (s *Store) setInFlight(shopID int64, inFlight bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.shops[shopID]; ok {
		st.inFlight = inFlight
	}
}

// noticeFor prefers the server-provided message carried by a normalized
// error over the generic fallback.
func noticeFor(err error, fallback string) string {
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		return typed.Message()
	}
	return fallback
}
