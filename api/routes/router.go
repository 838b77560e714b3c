package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/coffee-storefront/api/controllers"
	"github.com/angelmondragon/coffee-storefront/api/middleware"
	"github.com/angelmondragon/coffee-storefront/pkg/config"
	"github.com/angelmondragon/coffee-storefront/pkg/logger"
)

// NewRouter wires the storefront HTTP surface. metricsHandler may be nil, in
// which case /metrics is not mounted.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storefront controllers.Storefront,
	storage controllers.Pinger,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Shop.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storage))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", controllers.CatalogList(storefront, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(storefront, logg))
			r.Post("/items", controllers.CartAddItem(storefront, logg))
			r.Post("/items/{itemId}/increment", controllers.CartIncrementItem(storefront, logg))
			r.Post("/items/{itemId}/decrement", controllers.CartDecrementItem(storefront, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(storefront, logg))
		})

		r.Post("/checkout", controllers.CheckoutCreate(storefront, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(storefront, logg))
			r.Get("/{orderId}", controllers.OrderFetch(storefront, logg))
		})
	})

	return r
}
