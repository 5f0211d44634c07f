// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// DriverName maps a database type to its database/sql driver name
func DriverName(dbType string) (string, error) {
	switch dbType {
	case TypeSQLite, "":
		return "sqlite", nil
	case TypePostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// CreateSchema creates all tables needed by the results store.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements are plain SQL accepted by both SQLite and PostgreSQL.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Political parties
CREATE TABLE IF NOT EXISTS party (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    short_code TEXT NOT NULL UNIQUE,
    status TEXT NOT NULL DEFAULT 'activo' CHECK (status IN ('activo', 'inactivo'))
);

-- Ballot stations (mesas)
CREATE TABLE IF NOT EXISTS station (
    id TEXT PRIMARY KEY,
    region TEXT NOT NULL,
    municipality TEXT NOT NULL,
    venue TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_station_region ON station(region);

-- Vote counts per station and party
CREATE TABLE IF NOT EXISTS vote (
    station_id TEXT NOT NULL REFERENCES station(id) ON DELETE CASCADE,
    party_id TEXT NOT NULL REFERENCES party(id) ON DELETE CASCADE,
    votes INTEGER NOT NULL CHECK (votes >= 0),
    recorded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_station_id ON vote(station_id);
CREATE INDEX IF NOT EXISTS idx_vote_party_id ON vote(party_id);

-- Audit log (append only)
CREATE TABLE IF NOT EXISTS audit_log (
    seq INTEGER NOT NULL,
    station_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    action TEXT NOT NULL,
    party_id TEXT,
    recorded_at TEXT NOT NULL,
    PRIMARY KEY (seq)
);
`
