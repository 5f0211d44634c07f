// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store reads election results from the local results database.

A Store implements the same three queries as the remote results backend,
so it can be handed to the dashboard poller directly or served over HTTP
by handlers.SourceHandler:

	st := store.New(conn)
	tallies, err := st.Tallies(ctx, models.RegionFilter("Oruro"))
	audit, err := st.AuditLog(ctx)
	winners, err := st.RegionResults(ctx)

# Aggregation

Tallies sums station vote counts per party (optionally for one region),
lists parties with no votes as 0, and orders by total descending.
RegionResults picks the party with the most votes in every region and
reports its share rounded to two decimals.

# Demo Data

Seed fills an empty database with the demo party list, random stations
across the nine regions, weighted vote counts, and an audit log:

	err := st.Seed(ctx, store.DefaultSeedOptions())
*/
package store
