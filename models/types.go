// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"time"
)

// Region is a department key as used by the results source
type Region string

// Region keys. The set is fixed.
const (
	RegionLaPaz      Region = "La_Paz"
	RegionCochabamba Region = "Cochabamba"
	RegionSantaCruz  Region = "Santa_Cruz"
	RegionOruro      Region = "Oruro"
	RegionPotosi     Region = "Potosí"
	RegionChuquisaca Region = "Chuquisaca"
	RegionTarija     Region = "Tarija"
	RegionPando      Region = "Pando"
	RegionBeni       Region = "Beni"
)

// FilterAll selects every region
const FilterAll = "all"

// Regions lists every region key in display order
var Regions = []Region{
	RegionLaPaz,
	RegionCochabamba,
	RegionSantaCruz,
	RegionOruro,
	RegionPotosi,
	RegionChuquisaca,
	RegionTarija,
	RegionPando,
	RegionBeni,
}

// Valid reports whether r is one of the known region keys
func (r Region) Valid() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

// RegionFilter is either a Region key or "all"
type RegionFilter string

// ParseRegionFilter validates a filter value. An empty string means "all".
func ParseRegionFilter(s string) (RegionFilter, error) {
	if s == "" || s == FilterAll {
		return RegionFilter(FilterAll), nil
	}
	if !Region(s).Valid() {
		return "", fmt.Errorf("unknown region: %s", s)
	}
	return RegionFilter(s), nil
}

// IsAll reports whether the filter selects every region
func (f RegionFilter) IsAll() bool {
	return f == "" || f == FilterAll
}

// Region returns the region key, or "" when the filter is "all"
func (f RegionFilter) Region() Region {
	if f.IsAll() {
		return ""
	}
	return Region(f)
}

// Audit actions recorded by the results backend
const (
	ActionInsert = "inserción"
	ActionEdit   = "edición"
	ActionDelete = "eliminación"
)

// Login roles
const (
	RoleAdmin = "admin"
	RoleJuror = "juror"
)

// Domain types

// TallyRecord is the vote count for one party. Unique by ShortCode within a snapshot.
type TallyRecord struct {
	Name      string `json:"nombre"`
	ShortCode string `json:"sigla"`
	VoteCount int64  `json:"votos"`
}

// RegionResult is the winning party for one region
type RegionResult struct {
	RegionID          Region  `json:"departamento"`
	WinningPartyName  string  `json:"nombre"`
	WinningPartyCode  string  `json:"sigla"`
	WinningPercentage float64 `json:"porcentaje"`
}

// AuditEntry is a logged administrative action
type AuditEntry struct {
	Timestamp string `json:"fecha_hora"`
	ActorID   string `json:"user_id"`
	Action    string `json:"accion"`
	StationID string `json:"id_mesa"`
}

// DataEnvelope is the wrapper every source endpoint responds with
type DataEnvelope[T any] struct {
	Data []T `json:"data"`
}

// ViewState is the render-ready snapshot of all polled data.
// A ViewState is never mutated after it is published; every refresh
// produces a new value.
type ViewState struct {
	Tallies         []TallyRecord  `json:"tallies"`
	TotalVotes      int64          `json:"total_votes"`
	AuditEntries    []AuditEntry   `json:"audit_entries"`
	RegionResults   []RegionResult `json:"region_results"`
	RegionFilter    RegionFilter   `json:"region_filter"`
	LastRefreshedAt time.Time      `json:"last_refreshed_at"`
	Loading         bool           `json:"loading"`
	Cycle           uint64         `json:"cycle"`
}

// ColorPair is the fill and border color of one series entry
type ColorPair struct {
	Fill   string `json:"fill"`
	Border string `json:"border"`
}

// View types consumed by the rendering layer

type BarView struct {
	Name            string    `json:"name"`
	ShortCode       string    `json:"short_code"`
	Votes           int64     `json:"votes"`
	VotesLabel      string    `json:"votes_label"`
	Percentage      float64   `json:"percentage"`
	PercentageLabel string    `json:"percentage_label"`
	Color           ColorPair `json:"color"`
}

type RegionView struct {
	Region            Region    `json:"region"`
	WinningPartyName  string    `json:"winning_party_name"`
	WinningPartyCode  string    `json:"winning_party_code"`
	WinningPercentage float64   `json:"winning_percentage"`
	Color             ColorPair `json:"color"`
}

type AuditView struct {
	Timestamp string `json:"timestamp"`
	ActorID   string `json:"actor_id"`
	Action    string `json:"action"`
	StationID string `json:"station_id"`
}

type DashboardView struct {
	Title           string       `json:"title"`
	Subtitle        string       `json:"subtitle"`
	RegionFilter    RegionFilter `json:"region_filter"`
	TotalVotes      int64        `json:"total_votes"`
	TotalVotesLabel string       `json:"total_votes_label"`
	Bars            []BarView    `json:"bars"`
	Regions         []RegionView `json:"regions"`
	Audit           []AuditView  `json:"audit"`
	LastUpdated     string       `json:"last_updated"`
	Empty           bool         `json:"empty"`
	Loading         bool         `json:"loading"`
}

// Request types

type SetFilterRequest struct {
	Region string `json:"region"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response types

type LoginResponse struct {
	Role      string `json:"role"`
	Email     string `json:"email"`
	UserID    string `json:"user_id"`
	IDToken   string `json:"id_token"`
	ExpiresIn int    `json:"expires_in"`
}

type RegionsResponse struct {
	Regions []Region `json:"regions"`
}

type RefreshResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
