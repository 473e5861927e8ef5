package warehouse_test

import (
	"context"
	"testing"

	"github.com/salesdw/salesdw/internal/datagen"
	"github.com/salesdw/salesdw/internal/warehouse"
)

func TestSeedSample(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()

	if err := warehouse.SeedSample(ctx, s); err != nil {
		t.Fatalf("SeedSample failed: %v", err)
	}

	if n := countRows(t, s, "customers"); n != 3 {
		t.Errorf("Expected 3 customer rows, got %d", n)
	}
	if n := countRows(t, s, "products"); n != 3 {
		t.Errorf("Expected 3 product rows, got %d", n)
	}
	if n := countRows(t, s, "sales"); n != 4 {
		t.Errorf("Expected 4 sales rows, got %d", n)
	}

	// Seeding twice would duplicate fixed ids and must fail cleanly.
	if err := warehouse.SeedSample(ctx, s); err == nil {
		t.Error("Second SeedSample should fail on existing rows")
	}
	if n := countRows(t, s, "customers"); n != 3 {
		t.Errorf("Failed reseed should leave 3 customer rows, got %d", n)
	}
}

func TestSeedFake(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()

	res, err := warehouse.SeedFake(ctx, s, datagen.NewFakerWithSeed(7), 40)
	if err != nil {
		t.Fatalf("SeedFake failed: %v", err)
	}
	if res.Loaded != 40 {
		t.Errorf("Expected 40 loaded sales, got %d", res.Loaded)
	}

	if n := countRows(t, s, "sales"); n != 40 {
		t.Errorf("Expected 40 sales rows, got %d", n)
	}

	// Dimension pools are smaller than the sale count, so resolution must
	// have reused rows rather than creating one per sale.
	if n := countRows(t, s, "customers"); n < 1 || n > 10 {
		t.Errorf("Expected between 1 and 10 customer rows, got %d", n)
	}
	if n := countRows(t, s, "products"); n < 1 || n > 8 {
		t.Errorf("Expected between 1 and 8 product rows, got %d", n)
	}

	var dangling int
	err = s.DB().QueryRow(`
        SELECT COUNT(*) FROM sales s
        LEFT JOIN customers c ON s.customer_id = c.customer_id
        LEFT JOIN products p ON s.product_id = p.product_id
        WHERE c.customer_id IS NULL OR p.product_id IS NULL
    `).Scan(&dangling)
	if err != nil {
		t.Fatalf("Failed to check referential integrity: %v", err)
	}
	if dangling != 0 {
		t.Errorf("Found %d seeded sales with dangling dimension ids", dangling)
	}
}
