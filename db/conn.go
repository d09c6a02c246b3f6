// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/campus-vote/cliparse"
)

// sqlite pragmas applied to every pooled connection unless the DSN sets its own
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Open creates a connection pool for the configured database and verifies
// it with a ping bounded by cfg.QueryTimeout.
func Open(ctx context.Context, cfg cliparse.Config) (*sql.DB, error) {
	driverName, dsn := "sqlite", SQLiteDSN(cfg.DatabaseURL)
	if cfg.DatabaseType == cliparse.DatabasePostgres {
		driverName, dsn = "postgres", cfg.DatabaseURL
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}

	ConfigurePool(conn, cfg)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// ConfigurePool applies pool limits from cfg.
// sqlite is pinned to a single connection so writers are serialized
// in-process instead of failing with SQLITE_BUSY.
func ConfigurePool(conn *sql.DB, cfg cliparse.Config) {
	if cfg.DatabaseType != cliparse.DatabasePostgres {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		// Never recycle: an in-memory database lives only as long as its connection
		conn.SetConnMaxLifetime(0)
		return
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(max(1, cfg.MaxOpenConns/2))
	conn.SetConnMaxLifetime(30 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)
}

// SQLiteDSN appends the default pragmas to a sqlite DSN.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

// LockStudentClause returns the row-locking suffix for the student lookup
// inside the vote transaction. sqlite has no row locks; its single pooled
// connection already serializes the transaction.
func LockStudentClause(dbType string) string {
	if dbType == cliparse.DatabasePostgres {
		return " FOR UPDATE"
	}
	return ""
}

// SnapshotTxOptions returns options for a read-only transaction whose reads
// all observe one snapshot.
func SnapshotTxOptions(dbType string) *sql.TxOptions {
	if dbType == cliparse.DatabasePostgres {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	// sqlite transactions are already serializable
	return &sql.TxOptions{ReadOnly: true}
}
