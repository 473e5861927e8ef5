//-------------------------------------------------------------------------
//
// salesdw - Sales Warehouse Loader
//
// Copyright (c) 2025 - 2026, the salesdw authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import "fmt"

// ValidationError reports a malformed or out-of-range input record. The
// offending record is never partially loaded.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid record: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid record: %s %q %s", e.Field, e.Value, e.Reason)
}

// ReferentialError reports a fact row referencing a dimension id that does
// not exist. It indicates a resolver defect and is fatal for the run.
type ReferentialError struct {
	Table string
	ID    int64
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("no %s row with id %d", e.Table, e.ID)
}
