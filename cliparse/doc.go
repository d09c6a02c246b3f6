// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: Connection string or sqlite file DSN (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - IPHashSalt: Secret used to hash voter IPs (required)
  - QueryTimeout: Upper bound for each request's database work (default: 5s)
  - MaxOpenConns: Connection pool size (default: 10, sqlite always uses 1)
  - Seed: Insert demo data into an empty database

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-timeout    Database timeout
	-max-conns  Pool size
	-ip-salt    IP hash salt
	-seed       Seed demo data

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	DB_TIMEOUT     → -timeout
	DB_MAX_CONNS   → -max-conns
	IP_HASH_SALT   → -ip-salt
	SEED_DEMO_DATA → -seed

CLI flags take precedence over environment variables. main loads a .env
file (if present) before parsing, so values there act as defaults.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - IP_HASH_SALT must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
