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
	"math"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the calendar date layout used by CSV sources and the
// sale_date column.
const DateFormat = "2006-01-02"

// RawRecord is one untyped row from an external source, fields exactly as
// read. Email and Category may be empty.
type RawRecord struct {
	CustomerName string
	Email        string
	ProductName  string
	Category     string
	RawPrice     string
	Quantity     string
	SaleDate     string
}

// Record is a validated, normalized input record ready for loading.
type Record struct {
	CustomerName string
	Email        string // lowercased and trimmed; empty means absent
	ProductName  string
	Category     string // empty means absent
	UnitPrice    float64
	Quantity     int
	SaleDate     time.Time

	// LineTotal is the derived Quantity * UnitPrice.
	LineTotal float64
}

// Normalize validates and transforms a raw record. It returns a
// *ValidationError when the record is malformed; a failed record is never
// partially loaded because resolution only starts after Normalize succeeds.
func Normalize(raw RawRecord) (Record, error) {
	var rec Record

	rec.CustomerName = strings.TrimSpace(raw.CustomerName)
	if rec.CustomerName == "" {
		return Record{}, &ValidationError{Field: "customer_name", Reason: "must not be empty"}
	}

	rec.ProductName = strings.TrimSpace(raw.ProductName)
	if rec.ProductName == "" {
		return Record{}, &ValidationError{Field: "product_name", Reason: "must not be empty"}
	}

	rec.Email = strings.ToLower(strings.TrimSpace(raw.Email))
	rec.Category = strings.TrimSpace(raw.Category)

	price, err := strconv.ParseFloat(strings.TrimSpace(raw.RawPrice), 64)
	if err != nil {
		return Record{}, &ValidationError{Field: "raw_price", Value: raw.RawPrice, Reason: "is not a number"}
	}
	// ParseFloat accepts "NaN" and "Inf", and NaN slips past every
	// ordered comparison.
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return Record{}, &ValidationError{Field: "raw_price", Value: raw.RawPrice, Reason: "is not a finite number"}
	}
	if price < 0 {
		return Record{}, &ValidationError{Field: "raw_price", Value: raw.RawPrice, Reason: "must not be negative"}
	}
	rec.UnitPrice = price

	qty, err := strconv.Atoi(strings.TrimSpace(raw.Quantity))
	if err != nil {
		return Record{}, &ValidationError{Field: "quantity", Value: raw.Quantity, Reason: "is not an integer"}
	}
	if qty < 1 {
		return Record{}, &ValidationError{Field: "quantity", Value: raw.Quantity, Reason: "must be positive"}
	}
	rec.Quantity = qty

	date, err := time.Parse(DateFormat, strings.TrimSpace(raw.SaleDate))
	if err != nil {
		return Record{}, &ValidationError{Field: "sale_date", Value: raw.SaleDate, Reason: "is not a YYYY-MM-DD date"}
	}
	rec.SaleDate = date

	rec.LineTotal = float64(rec.Quantity) * rec.UnitPrice
	return rec, nil
}
