package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aromacraft/storefront-backend/api/controllers"
	"github.com/aromacraft/storefront-backend/api/middleware"
	cartsvc "github.com/aromacraft/storefront-backend/internal/cart"
	catalogsvc "github.com/aromacraft/storefront-backend/internal/catalog"
	checkoutsvc "github.com/aromacraft/storefront-backend/internal/checkout"
	eventssvc "github.com/aromacraft/storefront-backend/internal/events"
	newslettersvc "github.com/aromacraft/storefront-backend/internal/newsletter"
	offerssvc "github.com/aromacraft/storefront-backend/internal/offers"
	"github.com/aromacraft/storefront-backend/pkg/config"
	"github.com/aromacraft/storefront-backend/pkg/db"
	"github.com/aromacraft/storefront-backend/pkg/logger"
	"github.com/aromacraft/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	catalogService catalogsvc.Service,
	offersService offerssvc.Service,
	eventsService eventssvc.Service,
	newsletterService newslettersvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	formPolicy := middleware.NewFormRateLimitPolicy(
		"forms",
		cfg.FormLimits.Window,
		cfg.FormLimits.Limit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{name}", controllers.CartUpdateLine(cartService, logg))
			r.Delete("/items/{name}", controllers.CartRemoveLine(cartService, logg))
			r.Patch("/lines/{index}", controllers.CartUpdateLineAt(cartService, logg))
			r.Delete("/lines/{index}", controllers.CartRemoveLineAt(cartService, logg))
			r.Post("/discount", controllers.CartApplyDiscount(cartService, logg))
			r.Get("/discount/pending", controllers.CartPendingDiscount(cartService, offersService, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/state", controllers.CheckoutState(checkoutService, logg))
			r.Post("/begin", controllers.CheckoutBegin(checkoutService, logg))
			r.Post("/verify", controllers.CheckoutVerify(checkoutService, logg))
			r.Post("/submit", controllers.CheckoutSubmit(checkoutService, logg))
			r.Post("/abandon", controllers.CheckoutAbandon(checkoutService, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogList(catalogService, logg))
			r.Get("/recommended", controllers.CatalogRecommended(catalogService, logg))
			r.Post("/search-intent", controllers.CatalogSearchIntent(catalogService, logg))
		})

		r.Route("/offers", func(r chi.Router) {
			r.Get("/", controllers.OffersList(offersService, logg))
			r.Get("/deal", controllers.OffersDeal(offersService, logg))
			r.Post("/claim", controllers.OffersClaim(offersService, logg))
		})

		r.With(middleware.FormRateLimit(formPolicy, redisClient, logg)).
			Post("/events/registrations", controllers.EventsRegister(eventsService, logg))
		r.With(middleware.FormRateLimit(formPolicy, redisClient, logg)).
			Post("/newsletter/subscribe", controllers.NewsletterSubscribe(newsletterService, logg))
	})

	return r
}
