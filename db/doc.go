// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db manages the schema of the local results database.

# Schema Creation

CreateSchema creates all tables idempotently:

	err := db.CreateSchema(conn)

Uses CREATE TABLE IF NOT EXISTS, so it's safe to call on every startup.
The same statements run on SQLite (modernc.org/sqlite) and PostgreSQL
(github.com/lib/pq). Open picks the driver from the database type and
verifies the connection:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Tables

party: political parties

  - id: TEXT PRIMARY KEY (UUID)
  - name, short_code (unique)
  - status: 'activo' or 'inactivo'

station: ballot stations

  - id: TEXT PRIMARY KEY (UUID)
  - region: department key (La_Paz, Oruro, ...)
  - municipality, venue

vote: vote counts reported by a station for a party

  - station_id, party_id: references
  - votes: non-negative count
  - recorded_at: "YYYY-MM-DD HH:MM:SS"

audit_log: administrative actions, in append order

  - seq: ordering key
  - station_id, user_id, action, party_id
  - recorded_at: "YYYY-MM-DD HH:MM:SS"

Timestamps are stored as text in the format the results backend publishes.
*/
package db
