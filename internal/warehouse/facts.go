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
	"fmt"
	"time"
)

// AppendSale appends one fact row referencing resolved dimension ids and
// returns the new sale id. Sales are append-only; existing rows are never
// mutated or removed. It returns a *ReferentialError when either dimension
// id does not exist, which means the caller skipped the resolver.
func AppendSale(ctx context.Context, q Querier, customerID, productID int64, quantity int, saleDate time.Time) (int64, error) {
	if err := dimensionExists(ctx, q, "customers", "customer_id", customerID); err != nil {
		return 0, err
	}
	if err := dimensionExists(ctx, q, "products", "product_id", productID); err != nil {
		return 0, err
	}

	var id int64
	err := q.QueryRowContext(ctx, `
        SELECT COALESCE(MAX(sale_id), 0) + 1 FROM sales
    `).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("next sale id: %w", err)
	}

	_, err = q.ExecContext(ctx, `
        INSERT INTO sales (sale_id, customer_id, product_id, quantity, sale_date)
        VALUES (?, ?, ?, ?, ?)
    `, id, customerID, productID, quantity, saleDate.Format(DateFormat))
	if err != nil {
		return 0, fmt.Errorf("sale insert: %w", err)
	}
	return id, nil
}

func dimensionExists(ctx context.Context, q Querier, table, column string, id int64) error {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ?)", table, column)
	if err := q.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("%s check: %w", table, err)
	}
	if !exists {
		return &ReferentialError{Table: table, ID: id}
	}
	return nil
}
