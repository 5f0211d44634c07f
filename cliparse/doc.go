// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5173)
  - SourceURL: Results backend base URL
  - DatabaseURL: Local results database (alternative to SourceURL)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - PollInterval: Time between fetch cycles (default: 5s)
  - RequestTimeout: Deadline per backend request (default: 4s)
  - AuditLimit: Audit entries kept in the view (default: 20)
  - IdentityURL, IdentityAPIKey: Identity provider for logins
  - IPHashSalt: Salt for hashing client IPs in login logs
  - SeedDemo: Fill an empty local database with demo data
  - ServeSource: Also serve /votos, /auditoria, /votos_por_departamento

# CLI Flags

	-p              Server port
	-s              Results backend URL
	-d              Local database URL
	-t              Database type
	-interval       Poll interval
	-timeout        Request timeout
	-audit-limit    Audit entries to keep
	-identity-url   Identity provider URL
	-identity-key   Identity provider API key
	-ip-salt        IP hash salt
	-seed           Seed demo data
	-serve-source   Serve backend endpoints

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	SOURCE_URL       → -s
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	POLL_INTERVAL    → -interval
	REQUEST_TIMEOUT  → -timeout
	AUDIT_LIMIT      → -audit-limit
	IDENTITY_URL     → -identity-url
	IDENTITY_API_KEY → -identity-key
	IP_HASH_SALT     → -ip-salt
	SEED_DEMO        → -seed
	SERVE_SOURCE     → -serve-source

CLI flags take precedence over environment variables. main loads a .env
file first, so its values behave like environment variables.

# Validation

ParseFlags returns an error if:

  - neither or both of SOURCE_URL and DATABASE_URL are set
  - a numeric or duration value cannot be parsed
  - SEED_DEMO or SERVE_SOURCE is set without DATABASE_URL
*/
package cliparse
