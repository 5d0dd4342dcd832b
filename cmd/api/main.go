package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angelmondragon/aurana-storefront/api/routes"
	"github.com/angelmondragon/aurana-storefront/internal/cart"
	"github.com/angelmondragon/aurana-storefront/internal/catalog"
	"github.com/angelmondragon/aurana-storefront/internal/customers"
	"github.com/angelmondragon/aurana-storefront/internal/pages"
	"github.com/angelmondragon/aurana-storefront/internal/storefront"
	"github.com/angelmondragon/aurana-storefront/pkg/config"
	"github.com/angelmondragon/aurana-storefront/pkg/db"
	"github.com/angelmondragon/aurana-storefront/pkg/instance"
	"github.com/angelmondragon/aurana-storefront/pkg/logger"
	"github.com/angelmondragon/aurana-storefront/pkg/metrics"
	"github.com/angelmondragon/aurana-storefront/pkg/migrate"
	"github.com/angelmondragon/aurana-storefront/pkg/money"
	"github.com/angelmondragon/aurana-storefront/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	renderer, err := storefront.NewRenderer(storefront.Options{
		DefaultTitle:    cfg.Storefront.Title,
		OrderFormAction: cfg.Storefront.OrderFormAction,
	})
	if err != nil {
		return err
	}

	products, err := loadCartProducts(ctx, logg, dbClient, renderer)
	if err != nil {
		return err
	}

	var store pages.Store = pages.NewMemoryStore(cfg.Pages.TTL)
	if cfg.Pages.UsesRedis() {
		store = pages.NewRedisStore(redisClient, cfg.Pages.TTL, cfg.Pages.LockTimeout)
	}

	formatter := money.NewFormatter(cfg.Storefront.Locale)
	pageService, err := pages.NewService(store, products, formatter, metrics.NewCartMetrics(reg))
	if err != nil {
		return err
	}

	customerService, err := customers.NewService(customers.NewRepository(dbClient.DB()), customers.Options{
		WalletURL: cfg.Storefront.WalletURL,
		QRSize:    cfg.Storefront.QRSize,
	})
	if err != nil {
		return err
	}

	deps := routes.Dependencies{
		DB:        dbClient,
		Pages:     pageService,
		Customers: customerService,
		Renderer:  renderer,
		Metrics:   metrics.NewHTTPMetrics(reg),
		Gatherer:  reg,
	}
	if redisClient != nil {
		deps.Redis = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"instance":   instance.GetID(),
		"page_store": cfg.Pages.Store,
		"products":   len(products),
		"locale":     formatter.Locale(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loadCartProducts renders the active catalog as product cards and reads the
// cart's product set back from that markup. Malformed cards are skipped.
func loadCartProducts(ctx context.Context, logg *logger.Logger, dbClient *db.Client, renderer *storefront.Renderer) ([]cart.Product, error) {
	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		return nil, err
	}
	active, err := catalogService.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	products, issues, err := renderer.CartProducts(active)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		issueCtx := logg.WithFields(ctx, map[string]any{
			"card_index": issue.Index,
			"product_id": issue.ID,
			"reason":     issue.Reason,
		})
		logg.Warn(issueCtx, "catalog.card_skipped")
	}
	if len(products) == 0 {
		logg.Warn(ctx, "catalog is empty; storefront carts will have no products")
	}
	return products, nil
}
