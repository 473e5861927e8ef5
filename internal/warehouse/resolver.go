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
	"errors"
	"fmt"
)

// DefaultLocation is stored for customers whose source records carry no
// location, which is every CSV record.
const DefaultLocation = "Unknown"

// Resolver idempotently maps dimension natural keys to surrogate ids,
// inserting a new row only on the first encounter of a key.
//
// Resolution policy: a customer's natural key is (name, email) when an
// email is present and name alone otherwise; a product's natural key is
// its name. The policy is lookup-then-insert, never replace: an existing
// row's id and fields are left untouched on repeated encounters
// (first-write-wins for product category and price).
//
// Ids are assigned as max(existing ids) + 1. The lookup-then-insert pair
// is not atomic against other writers; the resolver assumes the single
// sequential writer the store guarantees for a run.
type Resolver struct {
	q Querier
}

// NewResolver creates a Resolver over q, typically the load run's
// transaction.
func NewResolver(q Querier) *Resolver {
	return &Resolver{q: q}
}

// ResolveCustomer returns the surrogate id for the customer natural key
// (name, email), creating the dimension row on first encounter. A created
// row's location defaults to DefaultLocation. An empty email is stored as
// NULL and keys the customer on name alone.
func (r *Resolver) ResolveCustomer(ctx context.Context, name, email string) (int64, error) {
	var (
		id  int64
		err error
	)
	if email != "" {
		err = r.q.QueryRowContext(ctx, `
            SELECT customer_id FROM customers WHERE name = ? AND email = ?
        `, name, email).Scan(&id)
	} else {
		err = r.q.QueryRowContext(ctx, `
            SELECT customer_id FROM customers WHERE name = ? AND email IS NULL
        `, name).Scan(&id)
	}
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("customer lookup: %w", err)
	}

	id, err = r.nextID(ctx, "customers", "customer_id")
	if err != nil {
		return 0, err
	}
	_, err = r.q.ExecContext(ctx, `
        INSERT INTO customers (customer_id, name, email, location) VALUES (?, ?, ?, ?)
    `, id, name, nullable(email), DefaultLocation)
	if err != nil {
		return 0, fmt.Errorf("customer insert: %w", err)
	}
	return id, nil
}

// ResolveProduct returns the surrogate id for the product named name,
// creating the dimension row with the given category and unit price on
// first encounter. Later encounters never update category or price.
func (r *Resolver) ResolveProduct(ctx context.Context, name, category string, unitPrice float64) (int64, error) {
	var id int64
	err := r.q.QueryRowContext(ctx, `
        SELECT product_id FROM products WHERE name = ?
    `, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("product lookup: %w", err)
	}

	id, err = r.nextID(ctx, "products", "product_id")
	if err != nil {
		return 0, err
	}
	_, err = r.q.ExecContext(ctx, `
        INSERT INTO products (product_id, name, category, price) VALUES (?, ?, ?, ?)
    `, id, name, nullable(category), unitPrice)
	if err != nil {
		return 0, fmt.Errorf("product insert: %w", err)
	}
	return id, nil
}

func (r *Resolver) nextID(ctx context.Context, table, column string) (int64, error) {
	var id int64
	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) + 1 FROM %s", column, table)
	if err := r.q.QueryRowContext(ctx, query).Scan(&id); err != nil {
		return 0, fmt.Errorf("next %s id: %w", table, err)
	}
	return id, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
