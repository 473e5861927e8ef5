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
)

// CustomerTotal is one row of the sales-by-customer report.
type CustomerTotal struct {
	CustomerID int64
	Name       string
	Total      float64
}

// TotalSalesByCustomer returns each customer's total sales value,
// sum(quantity * product price) over their sales, ordered by total
// descending with customer id ascending as the tie-break.
func TotalSalesByCustomer(ctx context.Context, q Querier) ([]CustomerTotal, error) {
	rows, err := q.QueryContext(ctx, `
        SELECT
            c.customer_id,
            c.name,
            SUM(s.quantity * p.price) AS total_sales
        FROM sales s
        JOIN customers c ON s.customer_id = c.customer_id
        JOIN products p ON s.product_id = p.product_id
        GROUP BY c.customer_id, c.name
        ORDER BY total_sales DESC, c.customer_id ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("sales by customer query: %w", err)
	}
	defer rows.Close()

	var totals []CustomerTotal
	for rows.Next() {
		var t CustomerTotal
		if err := rows.Scan(&t.CustomerID, &t.Name, &t.Total); err != nil {
			return nil, fmt.Errorf("sales by customer scan: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// DailyTotal is one row of the daily sales trend report.
type DailyTotal struct {
	Date  string
	Total float64
}

// DailySalesTrend returns total sales value per sale date, ordered by
// date ascending.
func DailySalesTrend(ctx context.Context, q Querier) ([]DailyTotal, error) {
	rows, err := q.QueryContext(ctx, `
        SELECT
            s.sale_date,
            SUM(s.quantity * p.price) AS daily_sales
        FROM sales s
        JOIN products p ON s.product_id = p.product_id
        GROUP BY s.sale_date
        ORDER BY s.sale_date
    `)
	if err != nil {
		return nil, fmt.Errorf("daily sales query: %w", err)
	}
	defer rows.Close()

	var totals []DailyTotal
	for rows.Next() {
		var t DailyTotal
		if err := rows.Scan(&t.Date, &t.Total); err != nil {
			return nil, fmt.Errorf("daily sales scan: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
