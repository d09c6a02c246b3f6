// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connection pooling, schema creation, and driver errors.

# Opening a Pool

Open selects the driver from the config (lib/pq for postgres,
modernc.org/sqlite for sqlite), applies pool limits, and pings:

	conn, err := db.Open(ctx, cfg)

sqlite pools are pinned to one connection, which serializes writers.

# Schema Creation

CreateSchema initializes all required tables for the given database type:

	if err := db.CreateSchema(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - students: roster, has_voted flag flips once
  - candidates: ballot choices with a total_votes counter
  - votes: append-only, UNIQUE(student_id)

# Relationships

	students   1──0..1 votes
	candidates 1──*    votes

# Seeding

Seed inserts a demo roster when the students table is empty:

	inserted, err := db.Seed(ctx, conn)

# Locking and Snapshots

	LockStudentClause(dbType)  // " FOR UPDATE" on postgres
	SnapshotTxOptions(dbType)  // read-only, REPEATABLE READ on postgres

# Error Classification

	db.IsUniqueViolation(err)      // 23505 / SQLITE_CONSTRAINT_UNIQUE
	db.IsSerializationFailure(err) // 40001, 40P01 / SQLITE_BUSY, SQLITE_LOCKED
*/
package db
