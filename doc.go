// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the campus vote API server.

The server runs a student election. It lists candidates, casts one vote
per registered student, and reports live standings and recent activity.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:vote.db IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 5000 -t postgres -d "postgres://..." -ip-salt ... -seed

A .env file in the working directory is loaded first, if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite DSN or PostgreSQL connection string
  - IP_HASH_SALT (-ip-salt): Secret for hashing voter IPs

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DB_TIMEOUT (-timeout): Per-request database timeout (default: 5s)
  - DB_MAX_CONNS (-max-conns): Pool size (default: 10)
  - SEED_DEMO_DATA (-seed): Seed a demo roster into an empty database

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (candidates, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON envelope helpers
  - models: Request/response types
  - auth: Voter identity helpers and IP hashing
  - db: Connection pool, schema, seeding, driver errors
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
