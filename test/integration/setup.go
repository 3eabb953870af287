package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"nagabalm/internal/model"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
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

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			slug VARCHAR(100) NOT NULL UNIQUE,
			translations JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			slug VARCHAR(100) NOT NULL UNIQUE,
			images TEXT[] NOT NULL DEFAULT '{}',
			price DECIMAL(10, 2) NOT NULL,
			is_top_sell BOOLEAN NOT NULL DEFAULT FALSE,
			category_id VARCHAR(50) NOT NULL DEFAULT '',
			translations JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(50) NOT NULL DEFAULT 'admin',
			refresh_token TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalog inserts a category and two products for read tests.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) (categoryID string, productIDs []string) {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()

	categoryID = "11111111-1111-1111-1111-111111111111"
	categoryTranslations := mustJSON(t, model.CategoryTranslations{
		EN: model.CategoryTranslation{Name: "Health"},
		KM: model.CategoryTranslation{Name: "សុខភាព"},
	})
	_, err := pool.Exec(ctx,
		`INSERT INTO categories (id, slug, translations, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		categoryID, "health", categoryTranslations, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	products := []struct {
		id        string
		slug      string
		price     float64
		isTopSell bool
		nameEN    string
		nameKM    string
	}{
		{"22222222-2222-2222-2222-222222222222", "balm-oil", 4.99, true, "Balm Oil", "ប្រេងបាល់ម៍"},
		{"33333333-3333-3333-3333-333333333333", "fire-balm", 5.50, false, "Fire Balm", "ហ្វាយបាម"},
	}

	for _, p := range products {
		translations := mustJSON(t, model.ProductTranslations{
			EN: model.ProductTranslation{Name: p.nameEN, Description: "A relaxing balm"},
			KM: model.ProductTranslation{Name: p.nameKM, Description: "ប្រេងសម្រាប់ផ្តល់ការធូរស្បើយ"},
		})
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, slug, images, price, is_top_sell, category_id, translations, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.id, p.slug, []string{"/uploads/" + p.slug + ".png"}, p.price, p.isTopSell,
			categoryID, translations, now, now,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.slug, err)
		}
		productIDs = append(productIDs, p.id)
	}

	return categoryID, productIDs
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"products", "categories", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal %T: %v", v, err)
	}
	return data
}
