//-------------------------------------------------------------------------
//
// salesdw - Sales Warehouse Loader
//
// Copyright (c) 2025 - 2026, the salesdw authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse implements the salesdw star schema: customer and
// product dimensions and an append-only sales fact table, together with
// the ETL upsert logic that populates them and the reporting queries
// that read them.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier is satisfied by both *sql.DB and *sql.Tx. It allows the schema,
// resolver, and reporting code to run either standalone or inside a load
// run's transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Schema SQL for the warehouse star schema. Dimension tables are
// upsertable; sales is append-only.
const createSchemaSQL = `
-- Customer Dimension
CREATE TABLE IF NOT EXISTS customers (
    customer_id INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    email       TEXT,
    location    TEXT
);

-- Product Dimension
CREATE TABLE IF NOT EXISTS products (
    product_id INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    category   TEXT,
    price      REAL
);

-- Sales Fact
CREATE TABLE IF NOT EXISTS sales (
    sale_id     INTEGER PRIMARY KEY,
    customer_id INTEGER NOT NULL,
    product_id  INTEGER NOT NULL,
    quantity    INTEGER NOT NULL,
    sale_date   TEXT NOT NULL,
    FOREIGN KEY (customer_id) REFERENCES customers (customer_id),
    FOREIGN KEY (product_id) REFERENCES products (product_id)
);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS sales;
DROP TABLE IF EXISTS products;
DROP TABLE IF EXISTS customers;
`

// Tables lists the warehouse tables in dependency order.
var Tables = []string{"customers", "products", "sales"}

// CreateSchema creates the warehouse tables if they do not exist.
func CreateSchema(ctx context.Context, q Querier) error {
	if _, err := q.ExecContext(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// DropSchema drops the warehouse tables. The fact table goes first so
// foreign keys never dangle mid-drop.
func DropSchema(ctx context.Context, q Querier) error {
	if _, err := q.ExecContext(ctx, dropSchemaSQL); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

// SchemaExists reports whether all warehouse tables are present.
func SchemaExists(ctx context.Context, q Querier) (bool, error) {
	for _, table := range Tables {
		var exists bool
		err := q.QueryRowContext(ctx, `
            SELECT EXISTS (
                SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?
            )
        `, table).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			return false, nil
		}
	}
	return true, nil
}
