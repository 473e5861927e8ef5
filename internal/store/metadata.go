//-------------------------------------------------------------------------
//
// salesdw - Sales Warehouse Loader
//
// Copyright (c) 2025 - 2026, the salesdw authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/salesdw/salesdw/internal/logging"
	"github.com/salesdw/salesdw/pkg/version"
)

const metadataTable = "salesdw_metadata"

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS salesdw_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// SaveMetadata records initialization metadata in the warehouse.
func (s *Store) SaveMetadata(ctx context.Context, seeded bool) error {
	if _, err := s.db.ExecContext(ctx, createMetadataTableSQL); err != nil {
		return &Error{Op: "create metadata table", Path: s.path, Err: err}
	}

	metadata := map[string]string{
		"version":        version.Short(),
		"initialized_at": time.Now().UTC().Format(time.RFC3339),
		"seeded":         fmt.Sprintf("%t", seeded),
	}

	for key, value := range metadata {
		_, err := s.db.ExecContext(ctx, `
            INSERT INTO salesdw_metadata (key, value) VALUES (?, ?)
            ON CONFLICT (key) DO UPDATE SET value = excluded.value
        `, key, value)
		if err != nil {
			return &Error{Op: "save metadata " + key, Path: s.path, Err: err}
		}
	}

	logging.Debug().
		Bool("seeded", seeded).
		Msg("Saved metadata")

	return nil
}

// MetadataValue retrieves a single metadata value by key.
func (s *Store) MetadataValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
        SELECT value FROM salesdw_metadata WHERE key = ?
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// Initialized reports whether the warehouse has been initialized.
func (s *Store) Initialized(ctx context.Context) (bool, error) {
	_, err := s.MetadataValue(ctx, "initialized_at")
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	// A missing table means an uninitialized store, not a failure.
	var exists bool
	scanErr := s.db.QueryRowContext(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?
        )
    `, metadataTable).Scan(&exists)
	if scanErr != nil {
		return false, &Error{Op: "check metadata", Path: s.path, Err: scanErr}
	}
	if !exists {
		return false, nil
	}
	return false, &Error{Op: "check metadata", Path: s.path, Err: err}
}

// DropMetadata drops the metadata table.
func (s *Store) DropMetadata(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}
