package warehouse_test

import (
	"context"
	"testing"

	"github.com/salesdw/salesdw/internal/warehouse"
)

func TestResolveCustomerIdempotent(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()
	resolver := warehouse.NewResolver(s.DB())

	first, err := resolver.ResolveCustomer(ctx, "Alice Johnson", "alice@email.com")
	if err != nil {
		t.Fatalf("ResolveCustomer failed: %v", err)
	}
	if first != 1 {
		t.Errorf("First customer id should be 1, got %d", first)
	}

	for i := 0; i < 3; i++ {
		id, err := resolver.ResolveCustomer(ctx, "Alice Johnson", "alice@email.com")
		if err != nil {
			t.Fatalf("ResolveCustomer failed: %v", err)
		}
		if id != first {
			t.Errorf("Repeated resolution returned %d, want %d", id, first)
		}
	}

	if n := countRows(t, s, "customers"); n != 1 {
		t.Errorf("Expected exactly one customer row, got %d", n)
	}
}

func TestResolveCustomerNaturalKey(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()
	resolver := warehouse.NewResolver(s.DB())

	withEmail, err := resolver.ResolveCustomer(ctx, "Alice Johnson", "alice@email.com")
	if err != nil {
		t.Fatalf("ResolveCustomer failed: %v", err)
	}

	// Same name with a different email is a different customer.
	otherEmail, err := resolver.ResolveCustomer(ctx, "Alice Johnson", "aj@work.com")
	if err != nil {
		t.Fatalf("ResolveCustomer failed: %v", err)
	}
	if otherEmail == withEmail {
		t.Error("Different email should resolve to a different customer")
	}

	// Same name without email keys on name alone: distinct from both
	// email-bearing rows, stable across calls.
	noEmail, err := resolver.ResolveCustomer(ctx, "Alice Johnson", "")
	if err != nil {
		t.Fatalf("ResolveCustomer failed: %v", err)
	}
	if noEmail == withEmail || noEmail == otherEmail {
		t.Error("Email-less key should not collide with email-bearing keys")
	}
	again, err := resolver.ResolveCustomer(ctx, "Alice Johnson", "")
	if err != nil {
		t.Fatalf("ResolveCustomer failed: %v", err)
	}
	if again != noEmail {
		t.Errorf("Email-less resolution returned %d, want %d", again, noEmail)
	}

	if n := countRows(t, s, "customers"); n != 3 {
		t.Errorf("Expected 3 customer rows, got %d", n)
	}
}

func TestResolveCustomerDefaults(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()
	resolver := warehouse.NewResolver(s.DB())

	id, err := resolver.ResolveCustomer(ctx, "Bob Smith", "")
	if err != nil {
		t.Fatalf("ResolveCustomer failed: %v", err)
	}

	var location string
	var email *string
	err = s.DB().QueryRow(
		"SELECT email, location FROM customers WHERE customer_id = ?", id,
	).Scan(&email, &location)
	if err != nil {
		t.Fatalf("Failed to read customer row: %v", err)
	}
	if email != nil {
		t.Errorf("Absent email should be stored as NULL, got %q", *email)
	}
	if location != warehouse.DefaultLocation {
		t.Errorf("Expected location %q, got %q", warehouse.DefaultLocation, location)
	}
}

func TestResolveProductFirstWriteWins(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()
	resolver := warehouse.NewResolver(s.DB())

	first, err := resolver.ResolveProduct(ctx, "Laptop", "Electronics", 999.99)
	if err != nil {
		t.Fatalf("ResolveProduct failed: %v", err)
	}

	// A repeated encounter with different category/price reuses the row
	// and never updates it.
	second, err := resolver.ResolveProduct(ctx, "Laptop", "Computers", 1099.99)
	if err != nil {
		t.Fatalf("ResolveProduct failed: %v", err)
	}
	if second != first {
		t.Errorf("Repeated resolution returned %d, want %d", second, first)
	}

	var category string
	var price float64
	err = s.DB().QueryRow(
		"SELECT category, price FROM products WHERE product_id = ?", first,
	).Scan(&category, &price)
	if err != nil {
		t.Fatalf("Failed to read product row: %v", err)
	}
	if category != "Electronics" || price != 999.99 {
		t.Errorf("Product row was clobbered: category=%q price=%v", category, price)
	}

	if n := countRows(t, s, "products"); n != 1 {
		t.Errorf("Expected exactly one product row, got %d", n)
	}
}

func TestMonotonicIDAssignment(t *testing.T) {
	s := newWarehouse(t)
	ctx := context.Background()
	resolver := warehouse.NewResolver(s.DB())

	var prev int64
	for _, name := range []string{"Widget", "Gadget", "Gizmo", "Sprocket"} {
		id, err := resolver.ResolveProduct(ctx, name, "", 1.00)
		if err != nil {
			t.Fatalf("ResolveProduct failed: %v", err)
		}
		if id <= prev {
			t.Errorf("Id %d for %q is not greater than previous id %d", id, name, prev)
		}
		prev = id
	}
}
