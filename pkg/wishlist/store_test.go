package wishlist

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/storely/wishsync/pkg/enums"
	pkgerrors "github.com/storely/wishsync/pkg/errors"
)

type stubRemote struct {
	mu        sync.Mutex
	addCalls  int
	addFunc   func(ctx context.Context, shopID, productID int64) (*WishlistItem, error)
	removeFn  func(ctx context.Context, shopID, itemID int64) error
	listFunc  func(ctx context.Context, shopID int64) ([]WishlistItem, error)
	checkFunc func(ctx context.Context, shopID, productID int64) bool
}

func (s *stubRemote) Add(ctx context.Context, shopID, productID int64) (*WishlistItem, error) {
	s.mu.Lock()
	s.addCalls++
	s.mu.Unlock()
	if s.addFunc != nil {
		return s.addFunc(ctx, shopID, productID)
	}
	return &WishlistItem{WishlistItemID: productID * 100, ShopID: shopID, ShopProductID: productID}, nil
}

func (s *stubRemote) Remove(ctx context.Context, shopID, itemID int64) error {
	if s.removeFn != nil {
		return s.removeFn(ctx, shopID, itemID)
	}
	return nil
}

func (s *stubRemote) List(ctx context.Context, shopID int64) ([]WishlistItem, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx, shopID)
	}
	return nil, nil
}

func (s *stubRemote) CheckStatus(ctx context.Context, shopID, productID int64) bool {
	if s.checkFunc != nil {
		return s.checkFunc(ctx, shopID, productID)
	}
	return false
}

func (s *stubRemote) CheckMembership(ctx context.Context, shopID int64, productIDs []int64) map[int64]bool {
	results := make(map[int64]bool, len(productIDs))
	for _, id := range productIDs {
		results[id] = s.CheckStatus(ctx, shopID, id)
	}
	return results
}

func (s *stubRemote) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCalls
}

type stubSession struct {
	token string
	role  enums.UserRole
}

func (s stubSession) AccessToken() string  { return s.token }
func (s stubSession) Role() enums.UserRole { return s.role }

type recorderNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (r *recorderNotifier) Success(ctx context.Context, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorderNotifier) Error(ctx context.Context, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, msg)
}

func (r *recorderNotifier) lastFailure() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.failures) == 0 {
		return ""
	}
	return r.failures[len(r.failures)-1]
}

func newTestStore(t *testing.T, remote RemoteAPI, session SessionReader, notifier *recorderNotifier) *Store {
	t.Helper()
	store, err := NewStore(StoreParams{
		Client:   remote,
		Session:  session,
		Notifier: notifier,
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func customerSession() stubSession {
	return stubSession{token: "token-abc", role: enums.RoleCustomer}
}

func TestAddRequiresSignIn(t *testing.T) {
	remote := &stubRemote{}
	notifier := &recorderNotifier{}
	store := newTestStore(t, remote, stubSession{token: "", role: enums.RoleCustomer}, notifier)

	if err := store.AddToShopWishlist(context.Background(), 7, 42); err != nil {
		t.Fatalf("unauthorized add should be a no-op, got %v", err)
	}
	if remote.calls() != 0 {
		t.Fatal("no network call expected")
	}
	if notifier.lastFailure() != NoticeSignInRequired {
		t.Fatalf("unexpected notice %q", notifier.lastFailure())
	}
	if store.ShopWishlistCount(7) != 0 {
		t.Fatal("state should be untouched")
	}
}

func TestAddRequiresCustomerRole(t *testing.T) {
	remote := &stubRemote{}
	notifier := &recorderNotifier{}
	store := newTestStore(t, remote, stubSession{token: "token-abc", role: enums.RoleMerchant}, notifier)

	if err := store.AddToShopWishlist(context.Background(), 7, 42); err != nil {
		t.Fatalf("unauthorized add should be a no-op, got %v", err)
	}
	if remote.calls() != 0 {
		t.Fatal("no network call expected")
	}
	if notifier.lastFailure() != NoticeCustomersOnly {
		t.Fatalf("unexpected notice %q", notifier.lastFailure())
	}
}

func TestAddAppendsConfirmedItem(t *testing.T) {
	remote := &stubRemote{}
	notifier := &recorderNotifier{}
	store := newTestStore(t, remote, customerSession(), notifier)

	if err := store.AddToShopWishlist(context.Background(), 7, 42); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !store.IsInShopWishlist(7, 42) {
		t.Fatal("item should be cached after confirmed add")
	}
	item, ok := store.WishlistItemByProductID(7, 42)
	if !ok || item.WishlistItemID != 4200 {
		t.Fatalf("unexpected item %+v", item)
	}
	if store.ShopWishlistCount(7) != 1 {
		t.Fatalf("unexpected count %d", store.ShopWishlistCount(7))
	}
}

func TestAddFailureLeavesStateUntouched(t *testing.T) {
	boom := pkgerrors.New(pkgerrors.CodeConflict, "item already in wishlist")
	remote := &stubRemote{
		addFunc: func(ctx context.Context, shopID, productID int64) (*WishlistItem, error) {
			return nil, boom
		},
	}
	notifier := &recorderNotifier{}
	store := newTestStore(t, remote, customerSession(), notifier)

	err := store.AddToShopWishlist(context.Background(), 7, 42)
	if !errors.Is(err, boom) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if store.IsInShopWishlist(7, 42) {
		t.Fatal("failed add must not cache the item")
	}
	if notifier.lastFailure() != "item already in wishlist" {
		t.Fatalf("server message should surface, got %q", notifier.lastFailure())
	}
}

func TestRemoveFiltersByItemID(t *testing.T) {
	remote := &stubRemote{}
	notifier := &recorderNotifier{}
	store := newTestStore(t, remote, customerSession(), notifier)

	if err := store.AddToShopWishlist(context.Background(), 7, 42); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddToShopWishlist(context.Background(), 7, 43); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.RemoveFromShopWishlist(context.Background(), 7, 4200); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if store.IsInShopWishlist(7, 42) {
		t.Fatal("removed item should be gone")
	}
	if !store.IsInShopWishlist(7, 43) {
		t.Fatal("other items must survive removal")
	}

	// Removing an id that is no longer cached stays a harmless no-op.
	if err := store.RemoveFromShopWishlist(context.Background(), 7, 4200); err != nil {
		t.Fatalf("repeated remove: %v", err)
	}
	if store.ShopWishlistCount(7) != 1 {
		t.Fatalf("unexpected count %d", store.ShopWishlistCount(7))
	}
}

func TestRefreshReplacesWholesale(t *testing.T) {
	serverItems := []WishlistItem{
		{WishlistItemID: 1, ShopID: 7, ShopProductID: 10},
		{WishlistItemID: 2, ShopID: 7, ShopProductID: 20},
	}
	remote := &stubRemote{
		listFunc: func(ctx context.Context, shopID int64) ([]WishlistItem, error) {
			return serverItems, nil
		},
	}
	notifier := &recorderNotifier{}
	store := newTestStore(t, remote, customerSession(), notifier)

	if err := store.AddToShopWishlist(context.Background(), 7, 99); err != nil {
		t.Fatalf("add: %v", err)
	}

	store.RefreshShopWishlist(context.Background(), 7)

	if store.IsInShopWishlist(7, 99) {
		t.Fatal("refresh must replace, not merge")
	}
	if !store.IsInShopWishlist(7, 10) || !store.IsInShopWishlist(7, 20) {
		t.Fatal("server items missing after refresh")
	}
	if store.ShopWishlistCount(7) != 2 {
		t.Fatalf("unexpected count %d", store.ShopWishlistCount(7))
	}
}

func TestRefreshSkipsSilentlyWhenSignedOut(t *testing.T) {
	called := false
	remote := &stubRemote{
		listFunc: func(ctx context.Context, shopID int64) ([]WishlistItem, error) {
			called = true
			return nil, nil
		},
	}
	notifier := &recorderNotifier{}
	store := newTestStore(t, remote, stubSession{}, notifier)

	store.RefreshShopWishlist(context.Background(), 7)

	if called {
		t.Fatal("no network call expected")
	}
	if notifier.lastFailure() != "" {
		t.Fatalf("silent skip should not notify, got %q", notifier.lastFailure())
	}
	if store.ShopWishlistCount(7) != 0 {
		t.Fatal("no record should be created")
	}
}

func TestRefreshFailsOpen(t *testing.T) {
	fail := false
	remote := &stubRemote{
		listFunc: func(ctx context.Context, shopID int64) ([]WishlistItem, error) {
			if fail {
				return nil, pkgerrors.New(pkgerrors.CodeDependency, "backend down")
			}
			return []WishlistItem{{WishlistItemID: 1, ShopID: 7, ShopProductID: 10}}, nil
		},
	}
	notifier := &recorderNotifier{}
	store := newTestStore(t, remote, customerSession(), notifier)

	store.RefreshShopWishlist(context.Background(), 7)
	if !store.IsInShopWishlist(7, 10) {
		t.Fatal("initial refresh should load items")
	}

	fail = true
	store.RefreshShopWishlist(context.Background(), 7)

	if !store.IsInShopWishlist(7, 10) {
		t.Fatal("failed refresh must keep last known good state")
	}
	if notifier.lastFailure() != "backend down" {
		t.Fatalf("failure notice expected, got %q", notifier.lastFailure())
	}
}

func TestShopsAreIsolated(t *testing.T) {
	remote := &stubRemote{}
	notifier := &recorderNotifier{}
	store := newTestStore(t, remote, customerSession(), notifier)

	if err := store.AddToShopWishlist(context.Background(), 7, 42); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddToShopWishlist(context.Background(), 8, 42); err != nil {
		t.Fatalf("add: %v", err)
	}

	if !store.IsInShopWishlist(7, 42) || !store.IsInShopWishlist(8, 42) {
		t.Fatal("each shop tracks its own membership")
	}

	store.ClearShopWishlist(7)
	if store.IsInShopWishlist(7, 42) {
		t.Fatal("cleared shop should read as empty")
	}
	if !store.IsInShopWishlist(8, 42) {
		t.Fatal("clearing one shop must not affect another")
	}

	store.ClearAllShopWishlists()
	if store.IsInShopWishlist(8, 42) {
		t.Fatal("clear all should wipe every shop")
	}
}

func TestReadsNeverMaterializeShopRecords(t *testing.T) {
	remote := &stubRemote{}
	store := newTestStore(t, remote, customerSession(), &recorderNotifier{})

	if store.IsInShopWishlist(99, 1) {
		t.Fatal("unloaded shop reads false")
	}
	if store.ShopWishlistCount(99) != 0 {
		t.Fatal("unloaded shop counts zero")
	}
	if store.ShopInFlight(99) {
		t.Fatal("unloaded shop is not in flight")
	}
	if items := store.ShopWishlistItems(99); items != nil {
		t.Fatalf("unloaded shop has no items, got %+v", items)
	}

	store.mu.RLock()
	_, exists := store.shops[99]
	store.mu.RUnlock()
	if exists {
		t.Fatal("pure reads must not create shop records")
	}
}

func TestOperationsSerializePerShop(t *testing.T) {
	const perShop = 4

	var mu sync.Mutex
	inFlight := map[int64]int{}
	remote := &stubRemote{
		addFunc: func(ctx context.Context, shopID, productID int64) (*WishlistItem, error) {
			mu.Lock()
			inFlight[shopID]++
			if inFlight[shopID] > 1 {
				mu.Unlock()
				return nil, errors.New("concurrent operation on one shop")
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inFlight[shopID]--
			mu.Unlock()
			return &WishlistItem{WishlistItemID: productID, ShopID: shopID, ShopProductID: productID}, nil
		},
	}
	store := newTestStore(t, remote, customerSession(), &recorderNotifier{})

	var wg sync.WaitGroup
	errs := make(chan error, perShop*2)
	for _, shopID := range []int64{7, 8} {
		for i := 0; i < perShop; i++ {
			shopID, i := shopID, i
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- store.AddToShopWishlist(context.Background(), shopID, int64(i+1))
			}()
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if store.ShopWishlistCount(7) != perShop || store.ShopWishlistCount(8) != perShop {
		t.Fatalf("unexpected counts %d/%d", store.ShopWishlistCount(7), store.ShopWishlistCount(8))
	}
}

func TestShopInFlightDuringOperation(t *testing.T) {
	started := make(chan struct{})
	finish := make(chan struct{})
	remote := &stubRemote{
		addFunc: func(ctx context.Context, shopID, productID int64) (*WishlistItem, error) {
			close(started)
			<-finish
			return &WishlistItem{WishlistItemID: 1, ShopID: shopID, ShopProductID: productID}, nil
		},
	}
	store := newTestStore(t, remote, customerSession(), &recorderNotifier{})

	done := make(chan error, 1)
	go func() {
		done <- store.AddToShopWishlist(context.Background(), 7, 42)
	}()

	<-started
	if !store.ShopInFlight(7) {
		t.Fatal("shop should report in flight during the network call")
	}
	if store.ShopInFlight(8) {
		t.Fatal("other shops are unaffected")
	}
	close(finish)

	if err := <-done; err != nil {
		t.Fatalf("add: %v", err)
	}
	if store.ShopInFlight(7) {
		t.Fatal("in-flight flag should clear after the operation")
	}
}

func TestShopAccessorDelegates(t *testing.T) {
	remote := &stubRemote{
		checkFunc: func(ctx context.Context, shopID, productID int64) bool {
			return shopID == 7 && productID == 42
		},
	}
	store := newTestStore(t, remote, customerSession(), &recorderNotifier{})
	shop := store.Shop(7)

	if shop.ShopID() != 7 {
		t.Fatalf("unexpected shop id %d", shop.ShopID())
	}
	if err := shop.Add(context.Background(), 42); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !shop.Contains(42) {
		t.Fatal("accessor should see the cached item")
	}
	if shop.Count() != 1 {
		t.Fatalf("unexpected count %d", shop.Count())
	}
	if !shop.CheckStatus(context.Background(), 42) {
		t.Fatal("check status should delegate to the client")
	}
	results := shop.CheckMembership(context.Background(), []int64{42, 43})
	if !results[42] || results[43] {
		t.Fatalf("unexpected membership results %+v", results)
	}

	item, ok := shop.ItemByProduct(42)
	if !ok || item.ShopProductID != 42 {
		t.Fatalf("unexpected item %+v", item)
	}
	if err := shop.Remove(context.Background(), item.WishlistItemID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if shop.Contains(42) {
		t.Fatal("item should be gone after removal")
	}

	shop.Clear()
	if shop.Count() != 0 {
		t.Fatal("clear should drop the record")
	}
}

func TestAddThroughClientCachesServerItem(t *testing.T) {
	respBody := `{"message":"item added to wishlist","data":{"wishlist_item_id":501,"user_id":88,"shop_id":7,"shop_product_id":42,"product":{"name":"Trail Pack","sku":"TP-01","price":"19.99","discount_percent":"0","stock":3}}}`
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusCreated, respBody), nil
	})
	client := newTestClient(t, "token-abc", rt)
	store := newTestStore(t, client, customerSession(), &recorderNotifier{})

	if err := store.AddToShopWishlist(context.Background(), 7, 42); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !store.IsInShopWishlist(7, 42) {
		t.Fatal("membership should reflect the confirmed add")
	}
	item, ok := store.WishlistItemByProductID(7, 42)
	if !ok || item.WishlistItemID != 501 {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestNewStoreValidation(t *testing.T) {
	if _, err := NewStore(StoreParams{Session: stubSession{}}); err == nil {
		t.Fatal("expected error for missing client")
	}
	if _, err := NewStore(StoreParams{Client: &stubRemote{}}); err == nil {
		t.Fatal("expected error for missing session")
	}
}
