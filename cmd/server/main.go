package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tavolohq/tavolo/internal"
	"github.com/tavolohq/tavolo/internal/auth"
	"github.com/tavolohq/tavolo/internal/cart"
	"github.com/tavolohq/tavolo/internal/cartstore"
	"github.com/tavolohq/tavolo/internal/handler/api"
	"github.com/tavolohq/tavolo/internal/middleware"
	"github.com/tavolohq/tavolo/internal/notify"
	"github.com/tavolohq/tavolo/internal/order"
	"github.com/tavolohq/tavolo/internal/promotion"
	"github.com/tavolohq/tavolo/internal/remote"
	"github.com/tavolohq/tavolo/internal/router"
	"github.com/tavolohq/tavolo/internal/routes"
	"github.com/tavolohq/tavolo/internal/telemetry"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Metrics registry shared by HTTP and commerce metrics
	registry := prometheus.NewRegistry()
	httpMetrics := middleware.NewMetrics(registry, "tavolo")
	metrics := telemetry.New(registry)

	// Auth collaborator. The bearer credential is issued elsewhere; an
	// empty token starts the engine unauthenticated.
	session := auth.NewTokenSession(os.Getenv("BEARER_TOKEN"))

	// Remote collaborators
	cartClient := remote.NewCartClient(remote.NewClient("cart", cfg.CartServiceURL, cfg.ClientTimeout, session))
	orderClient := remote.NewOrderClient(remote.NewClient("order", cfg.OrderServiceURL, cfg.ClientTimeout, session))
	promoClient := remote.NewPromotionClient(remote.NewClient("promotion", cfg.PromotionServiceURL, cfg.ClientTimeout, session))

	// Engine components
	relay := notify.NewRelay(metrics).WithDefaultTTL(cfg.NotificationTTL)
	store := cartstore.New(cartClient, session, logger, metrics, cartstore.WithDebounce(cfg.RefreshDebounce))
	store.BindSession(session)

	coordinator := cart.NewCoordinator(cartClient, store, session, relay, metrics, logger)
	controller := order.NewController(orderClient, session, relay, metrics, logger)
	evaluator := promotion.NewEvaluator(cfg.DeliveryFee)
	promoService := promotion.NewService(promoClient, evaluator, metrics, logger)

	// Router and routes
	r := router.New(
		middleware.RequestID,
		httpMetrics.Middleware,
		middleware.WithRequestLogger(logger),
		middleware.Recover,
	)

	routes.RegisterAPIRoutes(r, routes.APIDeps{
		Cart:          api.NewCartHandler(coordinator, store),
		Orders:        api.NewOrderHandler(controller),
		Promotions:    api.NewPromotionHandler(promoService),
		Notifications: api.NewNotificationHandler(relay),
		Metrics:       httpMetrics.Handler(),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "addr", addr, "env", cfg.Env)
	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
