// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/election-dashboard/models"
)

// Timestamp layout used for vote and audit records
const TimestampLayout = "2006-01-02 15:04:05"

// Party is a party row used to seed the database
type Party struct {
	Name      string
	ShortCode string
	Active    bool
	Weight    int // relative vote share when generating demo votes
}

// DemoParties is the party list used for demo data
var DemoParties = []Party{
	{Name: "Movimiento al Socialismo", ShortCode: "MAS", Active: true, Weight: 8},
	{Name: "Frente para la Victoria", ShortCode: "FPV", Active: true, Weight: 12},
	{Name: "Movimiento Nacionalista Revolucionario", ShortCode: "MNR", Active: false},
	{Name: "Frente Revolucionario de Izquierda", ShortCode: "FRI", Active: true, Weight: 18},
	{Name: "Unidad Nacional", ShortCode: "UN", Active: true, Weight: 18},
	{Name: "Partido Demócrata Cristiano", ShortCode: "PDC", Active: true, Weight: 5},
	{Name: "Morena", ShortCode: "MORENA", Active: true, Weight: 2},
	{Name: "Acción Democrática Nacionalista", ShortCode: "ADN", Active: false},
	{Name: "Pan-Bol", ShortCode: "PAN-BOL", Active: true, Weight: 2},
	{Name: "Nueva Generación Política", ShortCode: "NGP", Active: true, Weight: 15},
	{Name: "Creemos", ShortCode: "CREEMOS", Active: true, Weight: 10},
	{Name: "Comunidad Ciudadana", ShortCode: "CC", Active: false},
	{Name: "Bolivia Súmate", ShortCode: "SUMATE", Active: true, Weight: 12},
}

// SeedOptions controls demo data generation
type SeedOptions struct {
	Stations     int
	AuditEntries int
	MinVotes     int // per station
	MaxVotes     int // per station
	Now          time.Time
	Rand         *rand.Rand
}

// DefaultSeedOptions returns the options used by SEED_DEMO
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{
		Stations:     1000,
		AuditEntries: 50,
		MinVotes:     50,
		MaxVotes:     200,
		Now:          time.Now(),
		Rand:         rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

var auditActions = []string{models.ActionInsert, models.ActionEdit, models.ActionDelete}

// Seed fills an empty database with demo parties, stations, votes and
// audit entries. It does nothing if parties already exist.
func (s *Store) Seed(ctx context.Context, opts SeedOptions) error {
	var existing int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM party`).Scan(&existing); err != nil {
		return fmt.Errorf("failed to count parties: %w", err)
	}
	if existing > 0 {
		slog.Info("results database already seeded", "parties", existing)
		return nil
	}

	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if opts.MaxVotes < opts.MinVotes {
		opts.MaxVotes = opts.MinVotes
	}
	base := opts.Now.Add(-24 * time.Hour)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Parties
	var active []string
	var weights []int
	for _, p := range DemoParties {
		id := uuid.NewString()
		status := "inactivo"
		if p.Active {
			status = "activo"
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO party (id, name, short_code, status)
			VALUES ($1, $2, $3, $4)
		`, id, p.Name, p.ShortCode, status); err != nil {
			return fmt.Errorf("failed to insert party %s: %w", p.ShortCode, err)
		}
		if p.Active && p.Weight > 0 {
			active = append(active, id)
			weights = append(weights, p.Weight)
		}
	}

	// Stations and their votes
	stationIDs := make([]string, opts.Stations)
	for i := range opts.Stations {
		stationIDs[i] = uuid.NewString()
		region := models.Regions[opts.Rand.IntN(len(models.Regions))]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO station (id, region, municipality, venue)
			VALUES ($1, $2, $3, $4)
		`, stationIDs[i], string(region),
			fmt.Sprintf("Municipio_%d", opts.Rand.IntN(20)+1),
			fmt.Sprintf("Recinto_%d", opts.Rand.IntN(10)+1),
		); err != nil {
			return fmt.Errorf("failed to insert station: %w", err)
		}

		counts := distributeVotes(opts.Rand, opts.MinVotes+opts.Rand.IntN(opts.MaxVotes-opts.MinVotes+1), weights)
		for j, partyID := range active {
			recordedAt := base.Add(time.Duration(opts.Rand.IntN(1441)) * time.Minute)
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO vote (station_id, party_id, votes, recorded_at)
				VALUES ($1, $2, $3, $4)
			`, stationIDs[i], partyID, counts[j], recordedAt.Format(TimestampLayout)); err != nil {
				return fmt.Errorf("failed to insert vote: %w", err)
			}
		}
	}

	if err := seedAudit(ctx, tx, opts, base, stationIDs, active); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}

	slog.Info("seeded results database",
		"parties", len(DemoParties),
		"stations", opts.Stations,
		"audit_entries", opts.AuditEntries,
	)
	return nil
}

func seedAudit(ctx context.Context, tx *sql.Tx, opts SeedOptions, base time.Time, stationIDs, partyIDs []string) error {
	if len(stationIDs) == 0 || len(partyIDs) == 0 {
		return nil
	}

	// Entries are appended in timestamp order
	offsets := make([]int, opts.AuditEntries)
	for i := range offsets {
		offsets[i] = opts.Rand.IntN(1441)
	}
	slices.Sort(offsets)

	for i, offset := range offsets {
		recordedAt := base.Add(time.Duration(offset) * time.Minute)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO audit_log (seq, station_id, user_id, action, party_id, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, i+1,
			stationIDs[opts.Rand.IntN(len(stationIDs))],
			fmt.Sprintf("Usuario_%d", opts.Rand.IntN(20)+1),
			auditActions[opts.Rand.IntN(len(auditActions))],
			partyIDs[opts.Rand.IntN(len(partyIDs))],
			recordedAt.Format(TimestampLayout),
		); err != nil {
			return fmt.Errorf("failed to insert audit entry: %w", err)
		}
	}
	return nil
}

// distributeVotes assigns total votes one at a time using weighted choice
// and returns the count per weight index.
func distributeVotes(r *rand.Rand, total int, weights []int) []int {
	counts := make([]int, len(weights))
	sum := 0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return counts
	}

	for range total {
		pick := r.IntN(sum)
		for i, w := range weights {
			if pick < w {
				counts[i]++
				break
			}
			pick -= w
		}
	}
	return counts
}
