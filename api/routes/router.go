package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/aurana-storefront/api/controllers"
	"github.com/angelmondragon/aurana-storefront/api/middleware"
	"github.com/angelmondragon/aurana-storefront/pkg/config"
	"github.com/angelmondragon/aurana-storefront/pkg/db"
	"github.com/angelmondragon/aurana-storefront/pkg/logger"
	"github.com/angelmondragon/aurana-storefront/pkg/metrics"
	"github.com/angelmondragon/aurana-storefront/pkg/ratelimit"
)

// RedisClient is the Redis surface used by readiness checks and rate limiting.
type RedisClient interface {
	controllers.Pinger
	middleware.RateLimitStore
}

// Dependencies are the services the HTTP surface is built from. Redis stays
// nil when the deployment runs without it, and rate limits then fall back to
// a per-process limiter.
type Dependencies struct {
	DB        db.Pinger
	Redis     RedisClient
	Pages     controllers.PageService
	Customers controllers.CustomerService
	Renderer  controllers.PageRenderer
	Metrics   *metrics.HTTPMetrics
	Gatherer  prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
	)

	var (
		redisPinger  controllers.Pinger
		limiterStore middleware.RateLimitStore = ratelimit.NewLocal()
	)
	if deps.Redis != nil {
		redisPinger = deps.Redis
		limiterStore = deps.Redis
	}

	registerPolicy := middleware.NewRateLimitPolicy(
		"register",
		cfg.RateLimit.RegisterWindow,
		cfg.RateLimit.RegisterIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/pages", func(r chi.Router) {
		r.Post("/", controllers.PagesOpen(deps.Pages, logg))
		r.Get("/{pageId}/cart", controllers.PagesCart(deps.Pages, logg))
		r.Post("/{pageId}/clicks", controllers.PagesClick(deps.Pages, logg))
	})

	r.Route("/pages/{pageId}", func(r chi.Router) {
		r.Get("/", controllers.StorefrontPage(deps.Pages, deps.Customers, deps.Renderer, logg))
		r.Post("/clicks", controllers.StorefrontClick(deps.Pages, logg))
	})

	r.With(middleware.RateLimit(registerPolicy, limiterStore, logg)).
		Post("/register/{secretCode}", controllers.StorefrontRegister(deps.Customers, logg))

	r.Get("/", controllers.StorefrontHome(deps.Pages, deps.Renderer, logg))
	r.Get("/{secretCode}", controllers.StorefrontCustomer(deps.Pages, deps.Customers, deps.Renderer, logg))

	return r
}
