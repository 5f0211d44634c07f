// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"slices"

	"github.com/danielhkuo/election-dashboard/models"
)

// Store reads election results from the local results database.
// It satisfies dashboard.Source, so the poller can run against it
// without a remote backend.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Tallies returns the vote total of every party, highest first.
// Parties without votes in the selected region are included with 0.
func (s *Store) Tallies(ctx context.Context, filter models.RegionFilter) ([]models.TallyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.name, p.short_code, COALESCE(SUM(rv.votes), 0) AS total
		FROM party p
		LEFT JOIN (
			SELECT v.party_id, v.votes
			FROM vote v
			JOIN station s ON s.id = v.station_id
			WHERE CAST($1 AS TEXT) = '' OR s.region = $1
		) rv ON rv.party_id = p.id
		GROUP BY p.id, p.name, p.short_code
		ORDER BY total DESC, p.short_code
	`, string(filter.Region()))
	if err != nil {
		return nil, fmt.Errorf("failed to query tallies: %w", err)
	}
	defer rows.Close()

	tallies := []models.TallyRecord{}
	for rows.Next() {
		var t models.TallyRecord
		if err := rows.Scan(&t.Name, &t.ShortCode, &t.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tallies: %w", err)
	}

	return tallies, nil
}

// AuditLog returns every audit entry in append order
func (s *Store) AuditLog(ctx context.Context) ([]models.AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT recorded_at, user_id, action, station_id
		FROM audit_log
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.Timestamp, &e.ActorID, &e.Action, &e.StationID); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	return entries, nil
}

// RegionResults returns the winning party of every region that has votes.
// The winning percentage is the winner's share of the region's votes,
// rounded to two decimals. Ties go to the lower short code.
func (s *Store) RegionResults(ctx context.Context) ([]models.RegionResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.region, p.name, p.short_code, SUM(v.votes) AS total
		FROM vote v
		JOIN station s ON s.id = v.station_id
		JOIN party p ON p.id = v.party_id
		GROUP BY s.region, p.id, p.name, p.short_code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query region totals: %w", err)
	}
	defer rows.Close()

	type regionTotals struct {
		total  int64
		winner models.TallyRecord
	}
	byRegion := make(map[models.Region]*regionTotals)

	for rows.Next() {
		var region string
		var t models.TallyRecord
		if err := rows.Scan(&region, &t.Name, &t.ShortCode, &t.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan region total: %w", err)
		}

		rt, ok := byRegion[models.Region(region)]
		if !ok {
			rt = &regionTotals{winner: t}
			byRegion[models.Region(region)] = rt
		} else if t.VoteCount > rt.winner.VoteCount ||
			(t.VoteCount == rt.winner.VoteCount && t.ShortCode < rt.winner.ShortCode) {
			rt.winner = t
		}
		rt.total += t.VoteCount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read region totals: %w", err)
	}

	results := make([]models.RegionResult, 0, len(byRegion))
	for region, rt := range byRegion {
		if rt.total == 0 {
			continue
		}
		pct := float64(rt.winner.VoteCount) / float64(rt.total) * 100
		results = append(results, models.RegionResult{
			RegionID:          region,
			WinningPartyName:  rt.winner.Name,
			WinningPartyCode:  rt.winner.ShortCode,
			WinningPercentage: math.Round(pct*100) / 100,
		})
	}

	slices.SortFunc(results, func(a, b models.RegionResult) int {
		ai, bi := slices.Index(models.Regions, a.RegionID), slices.Index(models.Regions, b.RegionID)
		if ai != bi {
			return ai - bi
		}
		if a.RegionID < b.RegionID {
			return -1
		}
		if a.RegionID > b.RegionID {
			return 1
		}
		return 0
	})

	return results, nil
}
