// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the election dashboard server.

The server polls a results source for party vote tallies, the audit log and
per-department winners, keeps the latest snapshot in memory, and serves it
as a render-ready dashboard model. Administrators and electoral jurors log
in through an external identity provider.

# Starting the Server

Against a remote results backend:

	SOURCE_URL=http://localhost:8000 go run .

Or against a local database seeded with demo data:

	go run . -d results.db -seed -serve-source

A .env file in the working directory is loaded first.

# Configuration

Results source (exactly one):

  - SOURCE_URL (-s): results backend base URL
  - DATABASE_URL (-d): local results database
  - DATABASE_TYPE (-t): sqlite (default) or postgres

Polling:

  - POLL_INTERVAL (-interval): default 5s
  - REQUEST_TIMEOUT (-timeout): per-request deadline, default 4s
  - AUDIT_LIMIT (-audit-limit): audit entries kept, default 20

Login:

  - IDENTITY_URL (-identity-url): identity provider base URL
  - IDENTITY_API_KEY (-identity-key): provider API key
  - IP_HASH_SALT (-ip-salt): salt for client IP hashes in login logs

Local database only:

  - SEED_DEMO (-seed): fill an empty database with demo data
  - SERVE_SOURCE (-serve-source): also serve /votos, /auditoria and
    /votos_por_departamento

Optional settings:

  - PORT (-p): Server port (default: 5173)

# Architecture

  - dashboard: poller, derived totals, colors and the view model
  - source: HTTP client for the results backend
  - store: results source backed by SQL, plus demo seeding
  - db: connection and schema
  - auth: identity provider client and IP hashing
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: domain, view and request/response types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
