// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

// Defaults
const (
	DefaultPort           = 5173
	DefaultPollInterval   = 5 * time.Second
	DefaultRequestTimeout = 4 * time.Second
	DefaultAuditLimit     = 20
	DefaultDatabaseType   = "sqlite"
)

type Config struct {
	Port           int
	SourceURL      string
	DatabaseURL    string
	DatabaseType   string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	AuditLimit     int
	IdentityURL    string
	IdentityAPIKey string
	IPHashSalt     string
	SeedDemo       bool
	ServeSource    bool
}

// UsesDatabase reports whether results are read from the local database
// instead of a remote backend
func (c Config) UsesDatabase() bool {
	return c.SourceURL == "" && c.DatabaseURL != ""
}

// ParseFlags parses flags, falls back to environment variables and
// validates the result
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("election-dashboard", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.SourceURL, "s", "", "Results backend base URL")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Local results database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Polling
	fs.DurationVar(&cfg.PollInterval, "interval", 0, "Poll interval (e.g. 5s)")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Per-request timeout (e.g. 4s)")
	fs.IntVar(&cfg.AuditLimit, "audit-limit", 0, "Number of audit entries to keep")

	// Identity provider
	fs.StringVar(&cfg.IdentityURL, "identity-url", "", "Identity provider base URL")
	fs.StringVar(&cfg.IdentityAPIKey, "identity-key", "", "Identity provider API key (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for hashing client IPs in login logs (prefer env)")

	// Local database extras
	fs.BoolVar(&cfg.SeedDemo, "seed", false, "Seed the local database with demo data")
	fs.BoolVar(&cfg.ServeSource, "serve-source", false, "Serve the results backend endpoints from the local database")

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

	if cfg.SourceURL == "" {
		cfg.SourceURL = os.Getenv("SOURCE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.SourceURL == "" && cfg.DatabaseURL == "" {
		return Config{}, errors.New("results source required (use -s/SOURCE_URL or -d/DATABASE_URL)")
	}
	if cfg.SourceURL != "" && cfg.DatabaseURL != "" {
		return Config{}, errors.New("use either SOURCE_URL or DATABASE_URL, not both")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDatabaseType
		}
	}

	if cfg.PollInterval == 0 {
		d, err := durationEnv("POLL_INTERVAL", DefaultPollInterval)
		if err != nil {
			return Config{}, err
		}
		cfg.PollInterval = d
	}
	if cfg.PollInterval <= 0 {
		return Config{}, errors.New("poll interval must be positive")
	}

	if cfg.RequestTimeout == 0 {
		d, err := durationEnv("REQUEST_TIMEOUT", DefaultRequestTimeout)
		if err != nil {
			return Config{}, err
		}
		cfg.RequestTimeout = d
	}
	if cfg.RequestTimeout < 0 {
		return Config{}, errors.New("request timeout must not be negative")
	}

	if cfg.AuditLimit == 0 {
		if s := os.Getenv("AUDIT_LIMIT"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return Config{}, errors.New("invalid AUDIT_LIMIT env variable")
			}
			cfg.AuditLimit = n
		} else {
			cfg.AuditLimit = DefaultAuditLimit
		}
	}
	if cfg.AuditLimit < 0 {
		return Config{}, errors.New("audit limit must be positive")
	}

	if cfg.IdentityURL == "" {
		cfg.IdentityURL = os.Getenv("IDENTITY_URL")
	}
	if cfg.IdentityAPIKey == "" {
		cfg.IdentityAPIKey = os.Getenv("IDENTITY_API_KEY")
	}
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}

	if !cfg.SeedDemo {
		cfg.SeedDemo = boolEnv("SEED_DEMO")
	}
	if !cfg.ServeSource {
		cfg.ServeSource = boolEnv("SERVE_SOURCE")
	}
	if (cfg.SeedDemo || cfg.ServeSource) && !cfg.UsesDatabase() {
		return Config{}, errors.New("seeding and serving source endpoints require DATABASE_URL")
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.New("invalid " + key + " env variable")
	}
	return d, nil
}

func boolEnv(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
