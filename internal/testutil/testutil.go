//-------------------------------------------------------------------------
//
// salesdw - Sales Warehouse Loader
//
// Copyright (c) 2025 - 2026, the salesdw authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides warehouse store helpers for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/salesdw/salesdw/internal/store"
)

// OpenTestStore opens a fresh warehouse store in a per-test temp directory.
// The store is closed via t.Cleanup; the temp directory handles file
// removal.
func OpenTestStore(t *testing.T) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Logf("Warning: failed to close test store: %v", err)
		}
	})
	return s
}
