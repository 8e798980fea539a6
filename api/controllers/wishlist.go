package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/storely/wishsync/api/middleware"
	"github.com/storely/wishsync/api/responses"
	"github.com/storely/wishsync/api/validators"
	"github.com/storely/wishsync/internal/wishlists"
	pkgerrors "github.com/storely/wishsync/pkg/errors"
	"github.com/storely/wishsync/pkg/logger"
)

type addWishlistItemPayload struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// WishlistAdd adds a product to the caller's wishlist for the shop.
func WishlistAdd(svc wishlists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		shopID, err := pathID(r, "shopID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload addWishlistItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.AddItem(ctx, middleware.UserIDFromContext(ctx), shopID, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "item added to wishlist", item)
	}
}

// WishlistRemove soft-deletes the identified wishlist entry.
func WishlistRemove(svc wishlists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		shopID, err := pathID(r, "shopID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		itemID, err := pathID(r, "itemID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RemoveItem(ctx, middleware.UserIDFromContext(ctx), shopID, itemID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "item removed from wishlist", nil)
	}
}

// WishlistList returns the caller's wishlist for the shop in insertion order.
func WishlistList(svc wishlists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		shopID, err := pathID(r, "shopID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		data, err := svc.ListItems(ctx, middleware.UserIDFromContext(ctx), shopID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "wishlist fetched", data)
	}
}

// WishlistCheck answers whether one product is in the caller's wishlist.
func WishlistCheck(svc wishlists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		shopID, err := pathID(r, "shopID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		productID, err := pathID(r, "productID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		data, err := svc.CheckItem(ctx, middleware.UserIDFromContext(ctx), shopID, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "wishlist status checked", data)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name)
	}
	return value, nil
}
