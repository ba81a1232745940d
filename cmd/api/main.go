package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usedmarket/internal/auth"
	"usedmarket/internal/catalog"
	"usedmarket/internal/config"
	"usedmarket/internal/database"
	"usedmarket/internal/events"
	"usedmarket/internal/handler"
	"usedmarket/internal/payment"
	"usedmarket/internal/repository"
	"usedmarket/internal/router"
	"usedmarket/internal/service"

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
	logger := config.NewLogger(cfg.Logger, "api")
	logger.Info().Msg("starting used product API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Initialize repositories
	store := repository.NewStore(pool, logger)
	productRepo := repository.NewProductRepository(store)
	categoryRepo := repository.NewCategoryRepository(store)
	bookingRepo := repository.NewBookingRepository(store)
	userRepo := repository.NewUserRepository(store)
	paymentRepo := repository.NewPaymentRepository(store)

	if cfg.Catalog.File != "" {
		if err := importCategories(ctx, cfg, categoryRepo, logger); err != nil {
			return err
		}
	}

	// Payment processor
	bridge := payment.NewDisabledBridge()
	if cfg.Payment.StripeSecretKey != "" {
		bridge = payment.NewStripeBridge(cfg.Payment.StripeSecretKey, nil, logger)
	} else {
		logger.Warn().Msg("STRIPE_SECRET_KEY not set, payment intents are disabled")
	}

	// Event publishing
	publisher := events.NewNopPublisher()
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	tokens := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo)
	bookingService := service.NewBookingService(bookingRepo, publisher, logger)
	userService := service.NewUserService(userRepo, tokens, publisher, logger)
	paymentService := service.NewPaymentService(service.PaymentDeps{
		Tx:        store,
		Payments:  paymentRepo,
		Bookings:  bookingRepo,
		Products:  productRepo,
		Bridge:    bridge,
		Currency:  cfg.Payment.Currency,
		Publisher: publisher,
	}, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Products:   handler.NewProductHandler(productService, logger),
		Categories: handler.NewCategoryHandler(categoryService, logger),
		Bookings:   handler.NewBookingHandler(bookingService, logger),
		Payments:   handler.NewPaymentHandler(paymentService, logger),
		Users:      handler.NewUserHandler(userService, logger),
	}, router.Gates{
		Tokens:       tokens,
		Roles:        userService,
		EnforceAdmin: cfg.Auth.Enforce,
	}, logger)

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
			Bool("admin_gates", cfg.Auth.Enforce).
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

// importCategories seeds the category collection from CATEGORIES_FILE,
// reading from S3 first when enabled.
func importCategories(ctx context.Context, cfg *config.Config, categories repository.CategoryRepository, logger zerolog.Logger) error {
	fileLoader := catalog.NewFileLoader(logger)

	var s3Loader catalog.Loader
	if cfg.S3.Enabled {
		l, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for category files (S3 disabled)")
	}

	importer := catalog.NewImporter(catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger), categories, logger)
	if _, err := importer.Import(ctx, cfg.Catalog.File); err != nil {
		return fmt.Errorf("failed to import categories: %w", err)
	}
	return nil
}
