package warehouse_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/salesdw/salesdw/internal/warehouse"
)

func sourceRecords() []warehouse.RawRecord {
	return []warehouse.RawRecord{
		{
			CustomerName: "Alice Johnson",
			Email:        "Alice@Email.com",
			ProductName:  "Laptop",
			Category:     "Electronics",
			RawPrice:     "999.99",
			Quantity:     "1",
			SaleDate:     "2025-10-01",
		},
		{
			CustomerName: "Bob Smith",
			Email:        "bob@email.com",
			ProductName:  "Mouse",
			Category:     "Electronics",
			RawPrice:     "29.99",
			Quantity:     "2",
			SaleDate:     "2025-10-02",
		},
		{
			CustomerName: "Alice Johnson",
			Email:        "alice@email.com",
			ProductName:  "Mouse",
			Category:     "Electronics",
			RawPrice:     "29.99",
			Quantity:     "1",
			SaleDate:     "2025-10-03",
		},
	}
}

func TestLoaderRun(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()

	res, err := warehouse.NewLoader(s).Run(ctx, sourceRecords())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Loaded != 3 {
		t.Errorf("Expected 3 loaded records, got %d", res.Loaded)
	}
	if res.Skipped != 0 {
		t.Errorf("Expected 0 skipped records, got %d", res.Skipped)
	}

	// Alice appears twice with the same natural key (email case differs
	// only before normalization) and must resolve to one row.
	if n := countRows(t, s, "customers"); n != 2 {
		t.Errorf("Expected 2 customer rows, got %d", n)
	}
	if n := countRows(t, s, "products"); n != 2 {
		t.Errorf("Expected 2 product rows, got %d", n)
	}
	if n := countRows(t, s, "sales"); n != 3 {
		t.Errorf("Expected 3 sales rows, got %d", n)
	}
}

func TestLoaderRoundTrip(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()
	loader := warehouse.NewLoader(s)

	for i := 0; i < 2; i++ {
		if _, err := loader.Run(ctx, sourceRecords()); err != nil {
			t.Fatalf("Run %d failed: %v", i+1, err)
		}
	}

	// Dimensions stay singular; facts are append-only and double.
	if n := countRows(t, s, "customers"); n != 2 {
		t.Errorf("Expected 2 customer rows after double load, got %d", n)
	}
	if n := countRows(t, s, "products"); n != 2 {
		t.Errorf("Expected 2 product rows after double load, got %d", n)
	}
	if n := countRows(t, s, "sales"); n != 6 {
		t.Errorf("Expected 6 sales rows after double load, got %d", n)
	}
}

func TestLoaderReferentialIntegrity(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()

	if _, err := warehouse.NewLoader(s).Run(ctx, sourceRecords()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var dangling int
	err := s.DB().QueryRow(`
        SELECT COUNT(*) FROM sales s
        LEFT JOIN customers c ON s.customer_id = c.customer_id
        LEFT JOIN products p ON s.product_id = p.product_id
        WHERE c.customer_id IS NULL OR p.product_id IS NULL
    `).Scan(&dangling)
	if err != nil {
		t.Fatalf("Failed to check referential integrity: %v", err)
	}
	if dangling != 0 {
		t.Errorf("Found %d sales rows with dangling dimension ids", dangling)
	}
}

func TestLoaderAbortsOnInvalidRecord(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()

	records := sourceRecords()
	records[1].Quantity = "0"

	_, err := warehouse.NewLoader(s).Run(ctx, records)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	var verr *warehouse.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError in chain, got %v", err)
	}

	// The whole run rolls back: not even the valid first record remains.
	for _, table := range warehouse.Tables {
		if n := countRows(t, s, table); n != 0 {
			t.Errorf("Expected 0 %s rows after aborted run, got %d", table, n)
		}
	}
}

func TestLoaderSkipInvalid(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()

	records := sourceRecords()
	records[1].RawPrice = "-5.00"

	loader := warehouse.NewLoader(s)
	loader.SkipInvalid = true

	res, err := loader.Run(ctx, records)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Loaded != 2 {
		t.Errorf("Expected 2 loaded records, got %d", res.Loaded)
	}
	if res.Skipped != 1 {
		t.Errorf("Expected 1 skipped record, got %d", res.Skipped)
	}

	// The skipped record contributes no rows at all: Bob and his sale
	// are absent, and only records 1 and 3 were loaded.
	if n := countRows(t, s, "customers"); n != 1 {
		t.Errorf("Expected 1 customer row, got %d", n)
	}
	if n := countRows(t, s, "sales"); n != 2 {
		t.Errorf("Expected 2 sales rows, got %d", n)
	}
}

func TestAppendSaleMissingDimension(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()

	resolver := warehouse.NewResolver(s.DB())
	customerID, err := resolver.ResolveCustomer(ctx, "Alice Johnson", "alice@email.com")
	if err != nil {
		t.Fatalf("ResolveCustomer failed: %v", err)
	}

	date := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err = warehouse.AppendSale(ctx, s.DB(), customerID, 99, 1, date)
	var rerr *warehouse.ReferentialError
	if !errors.As(err, &rerr) {
		t.Fatalf("Expected *ReferentialError for missing product, got %v", err)
	}
	if rerr.Table != "products" || rerr.ID != 99 {
		t.Errorf("Unexpected referential error detail: %+v", rerr)
	}

	_, err = warehouse.AppendSale(ctx, s.DB(), 42, 99, 1, date)
	if !errors.As(err, &rerr) {
		t.Fatalf("Expected *ReferentialError for missing customer, got %v", err)
	}
	if rerr.Table != "customers" || rerr.ID != 42 {
		t.Errorf("Unexpected referential error detail: %+v", rerr)
	}

	if n := countRows(t, s, "sales"); n != 0 {
		t.Errorf("Expected 0 sales rows, got %d", n)
	}
}
