package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"usedmarket/internal/auth"
	"usedmarket/internal/config"
	"usedmarket/internal/database"
	"usedmarket/internal/events"
	"usedmarket/internal/handler"
	"usedmarket/internal/model"
	"usedmarket/internal/payment"
	"usedmarket/internal/repository"
	"usedmarket/internal/router"
	"usedmarket/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestSecret signs tokens in integration tests.
const TestSecret = "integration-secret"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Store     *repository.Store
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and
// the collection schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	pool, err := database.NewPoolFromURL(ctx, connStr, config.DatabaseConfig{
		MaxConnections: 10,
		MinConnections: 2,
	}, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		Store:     repository.NewStore(pool, logger),
		ConnStr:   connStr,
	}
}

// ServerOptions tweaks the server built by NewTestServer.
type ServerOptions struct {
	Bridge       payment.Bridge
	Publisher    events.Publisher
	EnforceAdmin bool
}

// NewTestServer wires the full handler stack over testDB the way the API
// binary does.
func NewTestServer(t *testing.T, testDB *TestDB, opts ServerOptions) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	if opts.Bridge == nil {
		opts.Bridge = payment.NewDisabledBridge()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.NewNopPublisher()
	}

	store := testDB.Store
	productRepo := repository.NewProductRepository(store)
	categoryRepo := repository.NewCategoryRepository(store)
	bookingRepo := repository.NewBookingRepository(store)
	userRepo := repository.NewUserRepository(store)
	paymentRepo := repository.NewPaymentRepository(store)

	tokens := auth.NewTokenManager(TestSecret, time.Hour)

	productService := service.NewProductService(productRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo)
	bookingService := service.NewBookingService(bookingRepo, opts.Publisher, logger)
	userService := service.NewUserService(userRepo, tokens, opts.Publisher, logger)
	paymentService := service.NewPaymentService(service.PaymentDeps{
		Tx:        store,
		Payments:  paymentRepo,
		Bookings:  bookingRepo,
		Products:  productRepo,
		Bridge:    opts.Bridge,
		Currency:  "usd",
		Publisher: opts.Publisher,
	}, logger)

	return router.New(router.Handlers{
		Products:   handler.NewProductHandler(productService, logger),
		Categories: handler.NewCategoryHandler(categoryService, logger),
		Bookings:   handler.NewBookingHandler(bookingService, logger),
		Payments:   handler.NewPaymentHandler(paymentService, logger),
		Users:      handler.NewUserHandler(userService, logger),
	}, router.Gates{
		Tokens:       tokens,
		Roles:        userService,
		EnforceAdmin: opts.EnforceAdmin,
	}, logger)
}

// SeedUser inserts a user document, with role when non-empty.
func SeedUser(t *testing.T, store *repository.Store, email, role string) string {
	t.Helper()

	doc := model.Document{model.UserEmail: email, "name": email}
	if role != "" {
		doc[model.UserRole] = role
	}
	res, err := store.Collection(model.CollectionUsers).InsertOne(context.Background(), doc)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return res.InsertedID
}

// SeedCategories inserts the given category names.
func SeedCategories(t *testing.T, store *repository.Store, names ...string) {
	t.Helper()

	categories := repository.NewCategoryRepository(store)
	for _, name := range names {
		if _, err := categories.Create(context.Background(), name); err != nil {
			t.Fatalf("failed to seed category %s: %v", name, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		model.CollectionPayments,
		model.CollectionBookings,
		model.CollectionProducts,
		model.CollectionProductCategories,
		model.CollectionUsers,
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", pgx.Identifier{table}.Sanitize()))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
