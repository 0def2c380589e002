package integration

import (
	"context"
	"testing"
	"time"

	"mini-checkout/internal/config"
	"mini-checkout/internal/database"
	"mini-checkout/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestEnv holds the stores backing one integration test.
type TestEnv struct {
	Pool  *pgxpool.Pool
	Mongo *mongo.Database
}

// SetupTestEnv starts PostgreSQL and MongoDB containers, applies the order
// ledger migrations and creates the cart indexes.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.Open(ctx, connStr, database.PoolSettings{
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: time.Minute,
	}, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(pool, logger); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	// Create MongoDB container
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate mongo container: %v", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get mongo connection string: %v", err)
	}

	mongoDB, err := database.ConnectMongo(ctx, config.MongoConfig{URI: uri, Database: "testdb"}, logger)
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}
	t.Cleanup(func() {
		_ = mongoDB.Client().Disconnect(context.Background())
	})

	if err := repository.EnsureCartIndexes(ctx, mongoDB); err != nil {
		t.Fatalf("failed to create cart indexes: %v", err)
	}

	return &TestEnv{Pool: pool, Mongo: mongoDB}
}

// CountOrders returns the number of rows in the order ledger.
func CountOrders(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM orders").Scan(&n); err != nil {
		t.Fatalf("failed to count orders: %v", err)
	}
	return n
}
