// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/campus-vote/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB, dbType string) error {
	ddl := sqliteSchema
	if dbType == cliparse.DatabasePostgres {
		ddl = postgresSchema
	}

	_, err := db.ExecContext(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Students (provisioned externally)
CREATE TABLE IF NOT EXISTS students (
    student_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE
);

-- Candidates (provisioned externally)
CREATE TABLE IF NOT EXISTS candidates (
    candidate_id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    course TEXT NOT NULL DEFAULT '',
    total_votes INTEGER NOT NULL DEFAULT 0 CHECK (total_votes >= 0)
);

CREATE INDEX IF NOT EXISTS idx_candidates_total_votes ON candidates(total_votes);

-- Votes (append-only, one per student)
CREATE TABLE IF NOT EXISTS votes (
    vote_id SERIAL PRIMARY KEY,
    student_id TEXT NOT NULL UNIQUE REFERENCES students(student_id),
    candidate_id INTEGER NOT NULL REFERENCES candidates(candidate_id),
    timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    ip_hash TEXT,
    user_agent TEXT
);

CREATE INDEX IF NOT EXISTS idx_votes_candidate_id ON votes(candidate_id);
CREATE INDEX IF NOT EXISTS idx_votes_timestamp ON votes(timestamp);
`

const sqliteSchema = `
-- Students (provisioned externally)
CREATE TABLE IF NOT EXISTS students (
    student_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE
);

-- Candidates (provisioned externally)
CREATE TABLE IF NOT EXISTS candidates (
    candidate_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    course TEXT NOT NULL DEFAULT '',
    total_votes INTEGER NOT NULL DEFAULT 0 CHECK (total_votes >= 0)
);

CREATE INDEX IF NOT EXISTS idx_candidates_total_votes ON candidates(total_votes);

-- Votes (append-only, one per student)
CREATE TABLE IF NOT EXISTS votes (
    vote_id INTEGER PRIMARY KEY AUTOINCREMENT,
    student_id TEXT NOT NULL UNIQUE REFERENCES students(student_id),
    candidate_id INTEGER NOT NULL REFERENCES candidates(candidate_id),
    timestamp TIMESTAMP NOT NULL,
    ip_hash TEXT,
    user_agent TEXT
);

CREATE INDEX IF NOT EXISTS idx_votes_candidate_id ON votes(candidate_id);
CREATE INDEX IF NOT EXISTS idx_votes_timestamp ON votes(timestamp);
`
