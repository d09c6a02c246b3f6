package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Supported database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

// Defaults
const (
	DefaultPort         = 5000
	DefaultQueryTimeout = 5 * time.Second
	DefaultMaxOpenConns = 10
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	IPHashSalt   string
	QueryTimeout time.Duration
	MaxOpenConns int
	Seed         bool
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("campus-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Pool tuning
	fs.DurationVar(&cfg.QueryTimeout, "timeout", 0, "Per-request database timeout (e.g. 5s)")
	fs.IntVar(&cfg.MaxOpenConns, "max-conns", 0, "Maximum open database connections")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	fs.BoolVar(&cfg.Seed, "seed", false, "Insert demo students and candidates into an empty database")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q (want sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.QueryTimeout == 0 {
		if s := os.Getenv("DB_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid DB_TIMEOUT env variable")
			}
			cfg.QueryTimeout = d
		} else {
			cfg.QueryTimeout = DefaultQueryTimeout
		}
	}
	if cfg.QueryTimeout < 0 {
		return Config{}, errors.New("database timeout must be positive")
	}

	if cfg.MaxOpenConns == 0 {
		if s := os.Getenv("DB_MAX_CONNS"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid DB_MAX_CONNS env variable")
			}
			cfg.MaxOpenConns = n
		} else {
			cfg.MaxOpenConns = DefaultMaxOpenConns
		}
	}
	if cfg.MaxOpenConns < 1 {
		return Config{}, errors.New("max connections must be at least 1")
	}

	if !cfg.Seed {
		if s := os.Getenv("SEED_DEMO_DATA"); s != "" {
			seed, err := strconv.ParseBool(s)
			if err != nil {
				return Config{}, errors.New("invalid SEED_DEMO_DATA env variable")
			}
			cfg.Seed = seed
		}
	}

	// Secrets - MUST be provided
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}
