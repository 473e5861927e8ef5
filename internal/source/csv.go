//-------------------------------------------------------------------------
//
// salesdw - Sales Warehouse Loader
//
// Copyright (c) 2025 - 2026, the salesdw authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package source reads raw sales records from delimited input files.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/salesdw/salesdw/internal/warehouse"
)

// Required and optional CSV columns. Column order does not matter; the
// header row decides the mapping.
var (
	requiredColumns = []string{"customer_name", "product_name", "raw_price", "quantity", "sale_date"}
	optionalColumns = []string{"email", "category"}
)

// ReadFile reads a header-prefixed CSV file into raw records. Values are
// returned exactly as read; normalization happens in the warehouse layer.
func ReadFile(path string) ([]warehouse.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read reads header-prefixed CSV records from r.
func Read(r io.Reader) ([]warehouse.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []warehouse.RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		records = append(records, warehouse.RawRecord{
			CustomerName: field(row, "customer_name"),
			Email:        field(row, "email"),
			ProductName:  field(row, "product_name"),
			Category:     field(row, "category"),
			RawPrice:     field(row, "raw_price"),
			Quantity:     field(row, "quantity"),
			SaleDate:     field(row, "sale_date"),
		})
	}
	return records, nil
}
