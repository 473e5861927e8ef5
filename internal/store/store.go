//-------------------------------------------------------------------------
//
// salesdw - Sales Warehouse Loader
//
// Copyright (c) 2025 - 2026, the salesdw authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package store manages the SQLite warehouse file for salesdw.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/salesdw/salesdw/internal/logging"
)

// Error indicates the warehouse store is unreachable, locked, or its
// schema is missing. It is fatal for the operation that hit it.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("store %s (%s)", e.Op, e.Path)
	}
	return fmt.Sprintf("store %s (%s): %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Store is a handle to the warehouse database. It is owned by a single
// process for the duration of a run; no concurrent writers are supported.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the warehouse file at path and verifies the
// connection. Foreign key enforcement is switched on for every connection.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, &Error{Op: "open", Path: path, Err: fmt.Errorf("empty database path")}
	}

	// Foreign key enforcement is per-connection state in SQLite, so it
	// rides in the DSN where every pooled connection picks it up.
	dsn := "file:" + path + "?_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &Error{Op: "open", Path: path, Err: err}
	}

	// Single writer; additional connections only risk SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, &Error{Op: "ping", Path: path, Err: err}
	}

	logging.Debug().
		Str("path", path).
		Msg("Opened warehouse store")

	return &Store{db: db, path: path}, nil
}

// OpenExisting opens the warehouse file at path, failing when it does not
// exist instead of creating an empty one. Commands that only read the
// warehouse use this so a mistyped path leaves no file behind.
func OpenExisting(ctx context.Context, path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Op: "open", Path: path, Err: fmt.Errorf("warehouse does not exist")}
		}
		return nil, &Error{Op: "open", Path: path, Err: err}
	}
	return Open(ctx, path)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the warehouse file path.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the underlying database handle for read-only queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// WithTx runs fn inside a single transaction. The transaction is committed
// only when fn returns nil; any error (or panic) rolls back every change fn
// made, so a failed run leaves the store in its prior state.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &Error{Op: "begin", Path: s.path, Err: err}
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &Error{Op: "commit", Path: s.path, Err: err}
	}
	committed = true
	return nil
}
