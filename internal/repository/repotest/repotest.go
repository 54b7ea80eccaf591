// Package repotest opens the integration database used by repository tests.
package repotest

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"jerseyshop/internal/migrate"
)

// Pool connects to TEST_DB_DSN, applies migrations and empties every table.
// The test is skipped when TEST_DB_DSN is unset.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
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

// Reset truncates all application tables.
func Reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	const q = `TRUNCATE payments, order_items, orders, cart_items, carts, users, jerseys, categories RESTART IDENTITY CASCADE`
	if _, err := pool.Exec(context.Background(), q); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

// InsertCategory adds a category row for fixtures.
func InsertCategory(t *testing.T, pool *pgxpool.Pool, id string) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO categories (id, name, image, description) VALUES ($1, $1, 'img', 'desc')`, id)
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}
}

// InsertJersey adds a jersey and returns its id.
func InsertJersey(t *testing.T, pool *pgxpool.Pool, categoryID, name string, priceCents int64) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `
INSERT INTO jerseys (name, player, price_cents, image, download_url, category_id)
VALUES ($1, $1 || ' player', $2, 'img', 'https://files.example/' || $1 || '.zip', $3)
RETURNING id`, name, priceCents, categoryID).Scan(&id)
	if err != nil {
		t.Fatalf("insert jersey: %v", err)
	}
	return id
}

// InsertUser adds a user and returns its id.
func InsertUser(t *testing.T, pool *pgxpool.Pool, email string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
INSERT INTO users (email, company_name, phone) VALUES ($1, 'Acme', '555') RETURNING id::text`, email).Scan(&id)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

// InsertOrder adds a PENDING order with no items and returns its id.
func InsertOrder(t *testing.T, pool *pgxpool.Pool, userID string, subtotal, tax int64) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
INSERT INTO orders (user_id, subtotal_cents, tax_cents, total_cents)
VALUES ($1, $2, $3, $2 + $3)
RETURNING id::text`, userID, subtotal, tax).Scan(&id)
	if err != nil {
		t.Fatalf("insert order: %v", err)
	}
	return id
}
