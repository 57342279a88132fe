// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

// Package database opens the SQLite store and applies schema migrations.
package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vinovest/sqlx"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// Open creates a new database connection with the SQLite settings this
// application relies on (WAL, foreign keys on) and runs all pending
// migrations.
func Open(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		dsn = "./data/linkman.db"
	}

	// Create the directory for file-based databases
	if !isMemory(dsn) {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}

	dsn = addDefaultParams(dsn)

	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if isMemory(dsn) {
		// An in-memory database exists per connection; keep a single one
		// so every query sees the same data.
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(time.Hour)
	}

	if err := configureSQLite(context.Background(), conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := RunMigrations(conn.DB); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

func isMemory(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// addDefaultParams adds recommended SQLite parameters if not already
// present. The pragmas travel in the DSN so every pooled connection gets
// them; foreign keys must be on because group and link cleanup relies on
// ON DELETE CASCADE.
func addDefaultParams(dsn string) string {
	sep := func() string {
		if strings.Contains(dsn, "?") {
			return "&"
		}
		return "?"
	}

	if !strings.Contains(dsn, "_txlock") {
		dsn += sep() + "_txlock=immediate"
	}
	if !strings.Contains(dsn, "_pragma") {
		dsn += sep() + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	return dsn
}

func configureSQLite(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return err
		}
	}

	return nil
}
