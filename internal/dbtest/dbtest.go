// Package dbtest provides a migrated Postgres pool for integration tests.
// TEST_DB_DSN selects an existing database; otherwise a throwaway container
// is started. Tests are skipped when neither is available.
package dbtest

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"luzeouro/internal/migrate"
)

var (
	once      sync.Once
	sharedDSN string
	setupErr  error
)

// Pool returns a pool on a freshly truncated schema.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in -short mode")
	}
	ctx := context.Background()
	once.Do(func() { sharedDSN, setupErr = resolveDSN(ctx) })
	if setupErr != nil {
		t.Skipf("postgres unavailable: %v", setupErr)
	}

	pool, err := pgxpool.New(ctx, sharedDSN)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	Reset(t, pool)
	return pool
}

// Reset empties every table except the seeded categories.
func Reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	const q = `TRUNCATE orders, favorites, cart_items, products, user_profiles, tokens, users RESTART IDENTITY CASCADE`
	if _, err := pool.Exec(context.Background(), q); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

// InsertUser creates a bare user row and returns its id.
func InsertUser(t *testing.T, pool *pgxpool.Pool, email string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (email, password_hash) VALUES ($1, 'x') RETURNING id::text`, email).Scan(&id)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

// InsertProduct creates a product priced in cents and returns its id.
func InsertProduct(t *testing.T, pool *pgxpool.Pool, name string, priceCents int64) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(),
		`INSERT INTO products (name, price_cents, material, category_key) VALUES ($1, $2, 'Ouro', 'aneis') RETURNING id::text`,
		name, priceCents).Scan(&id)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return id
}

func resolveDSN(ctx context.Context) (string, error) {
	if dsn := os.Getenv("TEST_DB_DSN"); dsn != "" {
		return dsn, nil
	}
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("luzeouro_test"),
		postgres.WithUsername("luzeouro"),
		postgres.WithPassword("luzeouro"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return "", err
	}
	// The container lives for the whole test binary; ryuk reaps it afterwards.
	return container.ConnectionString(ctx, "sslmode=disable")
}
