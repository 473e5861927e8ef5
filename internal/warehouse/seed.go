//-------------------------------------------------------------------------
//
// salesdw - Sales Warehouse Loader
//
// Copyright (c) 2025 - 2026, the salesdw authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/salesdw/salesdw/internal/datagen"
	"github.com/salesdw/salesdw/internal/logging"
	"github.com/salesdw/salesdw/internal/store"
)

// Sample dataset inserted by `salesdw init --seed`.
var (
	sampleCustomers = []struct {
		id       int64
		name     string
		email    string
		location string
	}{
		{1, "Alice Johnson", "alice@email.com", "New York"},
		{2, "Bob Smith", "bob@email.com", "Los Angeles"},
		{3, "Carol Davis", "carol@email.com", "Chicago"},
	}

	sampleProducts = []struct {
		id       int64
		name     string
		category string
		price    float64
	}{
		{1, "Laptop", "Electronics", 999.99},
		{2, "Mouse", "Electronics", 29.99},
		{3, "Book", "Literature", 19.99},
	}

	sampleSales = []struct {
		id         int64
		customerID int64
		productID  int64
		quantity   int
		saleDate   string
	}{
		{1, 1, 1, 1, "2025-10-01"},
		{2, 2, 2, 2, "2025-10-02"},
		{3, 3, 3, 1, "2025-10-03"},
		{4, 1, 3, 3, "2025-10-05"},
	}
)

// SeedSample inserts the built-in sample dataset in one transaction.
// It is meant for a freshly created schema; rows are inserted with fixed
// ids and fail on conflict rather than overwrite.
func SeedSample(ctx context.Context, s *store.Store) error {
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		for _, c := range sampleCustomers {
			_, err := tx.ExecContext(ctx, `
                INSERT INTO customers (customer_id, name, email, location) VALUES (?, ?, ?, ?)
            `, c.id, c.name, c.email, c.location)
			if err != nil {
				return fmt.Errorf("seed customer %q: %w", c.name, err)
			}
		}
		for _, p := range sampleProducts {
			_, err := tx.ExecContext(ctx, `
                INSERT INTO products (product_id, name, category, price) VALUES (?, ?, ?, ?)
            `, p.id, p.name, p.category, p.price)
			if err != nil {
				return fmt.Errorf("seed product %q: %w", p.name, err)
			}
		}
		for _, sl := range sampleSales {
			_, err := tx.ExecContext(ctx, `
                INSERT INTO sales (sale_id, customer_id, product_id, quantity, sale_date)
                VALUES (?, ?, ?, ?, ?)
            `, sl.id, sl.customerID, sl.productID, sl.quantity, sl.saleDate)
			if err != nil {
				return fmt.Errorf("seed sale %d: %w", sl.id, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Info().
		Int("customers", len(sampleCustomers)).
		Int("products", len(sampleProducts)).
		Int("sales", len(sampleSales)).
		Msg("Seeded sample data")

	return nil
}

// SeedFake generates numSales fake sale records and loads them through the
// normal ETL path, so seeded data obeys the same dimension-resolution
// invariants as a CSV load. Dimension pool sizes scale with numSales so
// customers and products repeat across sales.
func SeedFake(ctx context.Context, s *store.Store, faker *datagen.Faker, numSales int) (Result, error) {
	numCustomers := max(1, numSales/4)
	numProducts := max(1, numSales/5)

	type customer struct{ name, email string }
	type product struct {
		name, category string
		price          float64
	}

	customers := make([]customer, 0, numCustomers)
	for i := 0; i < numCustomers; i++ {
		customers = append(customers, customer{
			name:  faker.Name(),
			email: faker.Email(),
		})
	}

	products := make([]product, 0, numProducts)
	for i := 0; i < numProducts; i++ {
		products = append(products, product{
			name:     faker.ProductName(),
			category: faker.ProductCategory(),
			price:    faker.Price(1, 2000),
		})
	}

	records := make([]RawRecord, 0, numSales)
	for i := 0; i < numSales; i++ {
		c := datagen.Choose(faker, customers)
		p := datagen.Choose(faker, products)
		records = append(records, RawRecord{
			CustomerName: c.name,
			Email:        c.email,
			ProductName:  p.name,
			Category:     p.category,
			RawPrice:     strconv.FormatFloat(p.price, 'f', 2, 64),
			Quantity:     strconv.Itoa(faker.Int(1, 10)),
			SaleDate:     faker.PastDate().Format(DateFormat),
		})
	}

	return NewLoader(s).Run(ctx, records)
}
