package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storely/wishsync/api/controllers"
	"github.com/storely/wishsync/api/middleware"
	"github.com/storely/wishsync/internal/wishlists"
	"github.com/storely/wishsync/pkg/config"
	"github.com/storely/wishsync/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	wishlistService wishlists.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Route("/api/public/shops/{shopID}/wishlist", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.JWT, logg),
			middleware.RequireCustomer(logg),
		)
		r.Post("/", controllers.WishlistAdd(wishlistService, logg))
		r.Get("/", controllers.WishlistList(wishlistService, logg))
		r.Delete("/{itemID}", controllers.WishlistRemove(wishlistService, logg))
		r.Get("/check/{productID}", controllers.WishlistCheck(wishlistService, logg))
	})

	return r
}
