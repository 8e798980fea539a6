// Command smoke exercises the wishlist SDK against a running API instance:
// it mints a customer token, adds a product, verifies membership, and removes
// it again. Intended for dev environments sharing the server's JWT secret.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/storely/wishsync/pkg/auth"
	"github.com/storely/wishsync/pkg/auth/session"
	"github.com/storely/wishsync/pkg/config"
	"github.com/storely/wishsync/pkg/enums"
	"github.com/storely/wishsync/pkg/logger"
	"github.com/storely/wishsync/pkg/metrics"
	"github.com/storely/wishsync/pkg/notify"
	"github.com/storely/wishsync/pkg/wishlist"
)

func main() {
	shopID := flag.Int64("shop", 1, "shop to exercise")
	productID := flag.Int64("product", 1, "product to wishlist")
	userID := flag.Int64("user", 1, "user to act as")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "smoke"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	token, err := auth.MintAccessToken(cfg.JWT, time.Now(), auth.AccessTokenPayload{
		UserID: *userID,
		Role:   enums.RoleCustomer,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to mint token", err)
		os.Exit(1)
	}

	sess := session.New()
	if err := sess.SignIn(token); err != nil {
		logg.Error(context.Background(), "failed to sign in", err)
		os.Exit(1)
	}

	client, err := wishlist.NewClient(cfg.API.BaseURL, sess, logg,
		wishlist.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		wishlist.WithCheckChunkSize(cfg.Wishlist.CheckChunkSize),
		wishlist.WithMetrics(metrics.NewWishlistMetrics(prometheus.NewRegistry())),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build client", err)
		os.Exit(1)
	}

	store, err := wishlist.NewStore(wishlist.StoreParams{
		Client:   client,
		Session:  sess,
		Notifier: notify.NewLogNotifier(logg),
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build store", err)
		os.Exit(1)
	}

	ctx := logg.WithShopID(context.Background(), *shopID)
	shop := store.Shop(*shopID)

	shop.Refresh(ctx)
	logg.Info(logg.WithField(ctx, "count", shop.Count()), "initial wishlist state")

	if err := shop.Add(ctx, *productID); err != nil {
		logg.Error(ctx, "add failed", err)
		os.Exit(1)
	}
	if !shop.Contains(*productID) {
		logg.Error(ctx, "added product missing from cache", nil)
		os.Exit(1)
	}
	if !shop.CheckStatus(ctx, *productID) {
		logg.Error(ctx, "backend disagrees with cache after add", nil)
		os.Exit(1)
	}

	results := shop.CheckMembership(ctx, []int64{*productID})
	logg.Info(logg.WithField(ctx, "membership", results), "membership check complete")

	item, ok := shop.ItemByProduct(*productID)
	if !ok {
		logg.Error(ctx, "cached item not found", nil)
		os.Exit(1)
	}
	if err := shop.Remove(ctx, item.WishlistItemID); err != nil {
		logg.Error(ctx, "remove failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "smoke run complete")
}
