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

	"github.com/salesdw/salesdw/internal/logging"
	"github.com/salesdw/salesdw/internal/store"
)

// Loader runs the ETL sequence for a batch of raw records: normalize,
// resolve dimensions, append fact. The whole run executes inside one
// transaction; any failure rolls back every row the run wrote.
type Loader struct {
	store *store.Store

	// SkipInvalid skips records that fail validation instead of aborting
	// the run. Invalid records are counted and logged either way.
	SkipInvalid bool
}

// NewLoader creates a Loader over s.
func NewLoader(s *store.Store) *Loader {
	return &Loader{store: s}
}

// Result summarizes a completed load run.
type Result struct {
	Loaded  int
	Skipped int
}

// Run loads records in source order. With SkipInvalid unset (the default)
// the first validation failure aborts and rolls back the run; with it set,
// invalid records are skipped and counted. Any other error aborts and
// rolls back regardless.
func (l *Loader) Run(ctx context.Context, records []RawRecord) (Result, error) {
	var res Result

	err := l.store.WithTx(ctx, func(tx *sql.Tx) error {
		resolver := NewResolver(tx)

		for i, raw := range records {
			rec, err := Normalize(raw)
			if err != nil {
				var verr *ValidationError
				if errors.As(err, &verr) && l.SkipInvalid {
					logging.Warn().
						Int("record", i+1).
						Str("field", verr.Field).
						Str("reason", verr.Reason).
						Msg("Skipping invalid record")
					res.Skipped++
					continue
				}
				return fmt.Errorf("record %d: %w", i+1, err)
			}

			customerID, err := resolver.ResolveCustomer(ctx, rec.CustomerName, rec.Email)
			if err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}

			productID, err := resolver.ResolveProduct(ctx, rec.ProductName, rec.Category, rec.UnitPrice)
			if err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}

			if _, err := AppendSale(ctx, tx, customerID, productID, rec.Quantity, rec.SaleDate); err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}
			res.Loaded++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logging.Info().
		Int("loaded", res.Loaded).
		Int("skipped", res.Skipped).
		Msg("Load run complete")

	return res, nil
}
