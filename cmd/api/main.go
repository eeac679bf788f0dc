package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aromacraft/storefront-backend/api/routes"
	"github.com/aromacraft/storefront-backend/internal/cart"
	"github.com/aromacraft/storefront-backend/internal/catalog"
	"github.com/aromacraft/storefront-backend/internal/checkout"
	"github.com/aromacraft/storefront-backend/internal/events"
	"github.com/aromacraft/storefront-backend/internal/newsletter"
	"github.com/aromacraft/storefront-backend/internal/notify"
	"github.com/aromacraft/storefront-backend/internal/offers"
	"github.com/aromacraft/storefront-backend/pkg/config"
	"github.com/aromacraft/storefront-backend/pkg/db"
	"github.com/aromacraft/storefront-backend/pkg/logger"
	"github.com/aromacraft/storefront-backend/pkg/metrics"
	"github.com/aromacraft/storefront-backend/pkg/migrate"
	"github.com/aromacraft/storefront-backend/pkg/redis"
)

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	pricing, err := cart.PricingFromConfig(cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "invalid pricing config", err)
		os.Exit(1)
	}

	cartRepo, err := cart.NewRepository(redisClient, cfg.Session.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart repository", err)
		os.Exit(1)
	}

	notifier, err := notify.NewCartNotifier(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart notifier", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, notifier, pricing, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(
		redisClient,
		cartService,
		checkout.NewSecretChallenge(cfg.Checkout.ChallengeSecret),
		cfg.Session.TTL,
		storefrontMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), redisClient, cfg.Session.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	offersService, err := offers.NewService(redisClient, cfg.Deal.Window, cfg.Session.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create offers service", err)
		os.Exit(1)
	}

	newsletterService, err := newsletter.NewService(newsletter.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter service", err)
		os.Exit(1)
	}

	eventsService, err := events.NewService(events.NewRepository(dbClient.DB()), newsletterService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create events service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			cartService,
			checkoutService,
			catalogService,
			offersService,
			eventsService,
			newsletterService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
