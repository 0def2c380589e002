package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mini-checkout/internal/cache"
	"mini-checkout/internal/catalog"
	"mini-checkout/internal/config"
	"mini-checkout/internal/database"
	"mini-checkout/internal/handler"
	"mini-checkout/internal/payment"
	"mini-checkout/internal/repository"
	"mini-checkout/internal/router"
	"mini-checkout/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting mini-checkout server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Order ledger
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Cart store
	mongoDB, err := database.ConnectMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize MongoDB: %w", err)
	}
	defer func() {
		if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	if err := repository.EnsureCartIndexes(ctx, mongoDB); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	// Webhook in-flight lock
	var lock cache.WebhookLock = cache.NopLock{}
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		lock = cache.NewRedisLock(rdb, cfg.Redis.LockTTL)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("webhook lock backed by Redis")
	} else {
		logger.Info().Msg("webhook lock disabled (Redis disabled)")
	}

	// Offer catalog
	offers, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Payment provider
	gateway := payment.NewBreakerGateway(
		payment.NewStripeGateway(cfg.Payment.SecretKey, cfg.Payment.WebhookSecret, nil, logger),
		payment.BreakerSettings{
			MaxFailures: cfg.Payment.BreakerMaxFailures,
			OpenTimeout: cfg.Payment.BreakerOpenTimeout,
		},
		logger,
	)

	// Initialize repositories
	cartRepo := repository.NewCartRepository(mongoDB, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize services
	cartService := service.NewCartService(cartRepo, offers, logger)
	checkoutService := service.NewCheckoutService(cartRepo, gateway, service.CheckoutSettings{
		Currency:   cfg.Payment.Currency,
		SuccessURL: cfg.Storefront.SuccessURL(),
		CancelURL:  cfg.Storefront.CancelURL(),
		Timeout:    cfg.Payment.Timeout,
	}, logger)
	webhookService := service.NewWebhookService(gateway, orderRepo, cartRepo, lock, cfg.Storefront.OwnerID, logger)
	orderService := service.NewOrderService(orderRepo, logger)

	// Initialize HTTP handlers
	owner := handler.StaticOwner(cfg.Storefront.OwnerID)
	handlers := router.Handlers{
		Storefront: handler.NewStorefrontHandler(offers, cartService, owner, cfg.Payment.Currency, logger),
		Checkout:   handler.NewCheckoutHandler(checkoutService, owner, logger),
		Webhook:    handler.NewWebhookHandler(webhookService, logger),
		Pages:      handler.NewPageHandler(logger),
		Orders:     handler.NewOrderHandler(orderService, logger),
	}

	// Initialize router
	mux := router.New(handlers, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Int("offers", offers.Size()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadCatalog builds the offer catalog from CATALOG_FILE (S3 first when
// enabled, then the local file system) or, failing that, from PRODUCT_ID_1/2.
func loadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (catalog.Catalog, error) {
	if cfg.Storefront.CatalogFile == "" {
		logger.Info().
			Int("offers", len(cfg.Storefront.OfferIDs)).
			Msg("using offers from PRODUCT_ID_1/PRODUCT_ID_2")
		return catalog.FromOfferIDs(cfg.Storefront.OfferIDs, cfg.Payment.Currency)
	}

	fileLoader := catalog.NewFileLoader(logger)
	var s3Loader catalog.Loader

	if cfg.S3.Enabled {
		loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for catalog file (S3 disabled)")
	}

	return catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger).Load(ctx, cfg.Storefront.CatalogFile)
}
