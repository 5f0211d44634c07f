// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"testing"
	"time"

	"github.com/danielhkuo/election-dashboard/models"
)

func TestBuildView(t *testing.T) {
	state := models.ViewState{
		Tallies: []models.TallyRecord{
			{Name: "Creemos", ShortCode: "CREEMOS", VoteCount: 1200},
			{Name: "Unidad Nacional", ShortCode: "UN", VoteCount: 2400},
			{Name: "Alianza", ShortCode: "ALZ", VoteCount: 1200},
		},
		TotalVotes: 4800,
		AuditEntries: []models.AuditEntry{
			{Timestamp: "2025-08-17 10:15:00", ActorID: "Usuario_7", Action: models.ActionEdit, StationID: "m7"},
		},
		RegionResults: []models.RegionResult{
			{RegionID: models.RegionBeni, WinningPartyName: "Creemos", WinningPartyCode: "CREEMOS", WinningPercentage: 41.5},
			{RegionID: models.RegionLaPaz, WinningPartyName: "Unidad Nacional", WinningPartyCode: "UN", WinningPercentage: 52.25},
			{RegionID: models.RegionOruro, WinningPartyName: "Otro", WinningPartyCode: "OTRO", WinningPercentage: 30},
		},
		RegionFilter:    models.FilterAll,
		LastRefreshedAt: time.Date(2025, 8, 17, 9, 5, 7, 0, time.UTC),
	}

	view := BuildView(state)

	if view.Title == "" || view.Subtitle == "" {
		t.Error("Expected title and subtitle")
	}
	if view.Empty || view.Loading {
		t.Errorf("Expected non-empty loaded view, got empty=%v loading=%v", view.Empty, view.Loading)
	}
	if view.TotalVotes != 4800 || view.TotalVotesLabel != "4,800" {
		t.Errorf("Unexpected total: %d %q", view.TotalVotes, view.TotalVotesLabel)
	}
	if view.LastUpdated != "09:05:07" {
		t.Errorf("Expected last updated '09:05:07', got '%s'", view.LastUpdated)
	}

	// Sorted by votes, ties by short code
	wantOrder := []string{"UN", "ALZ", "CREEMOS"}
	if len(view.Bars) != len(wantOrder) {
		t.Fatalf("Expected %d bars, got %d", len(wantOrder), len(view.Bars))
	}
	for i, code := range wantOrder {
		bar := view.Bars[i]
		if bar.ShortCode != code {
			t.Errorf("Bar %d: expected %s, got %s", i, code, bar.ShortCode)
		}
		if bar.Color != AssignColor(i) {
			t.Errorf("Bar %d: expected color %+v, got %+v", i, AssignColor(i), bar.Color)
		}
	}
	if view.Bars[0].VotesLabel != "2,400" || view.Bars[0].PercentageLabel != "50.00%" {
		t.Errorf("Unexpected labels on first bar: %q %q", view.Bars[0].VotesLabel, view.Bars[0].PercentageLabel)
	}
	if view.Bars[1].PercentageLabel != "25.00%" {
		t.Errorf("Expected '25.00%%', got %q", view.Bars[1].PercentageLabel)
	}

	// Regions in display order, colored by winning bar
	if len(view.Regions) != 3 {
		t.Fatalf("Expected 3 regions, got %d", len(view.Regions))
	}
	if view.Regions[0].Region != models.RegionLaPaz || view.Regions[1].Region != models.RegionOruro || view.Regions[2].Region != models.RegionBeni {
		t.Errorf("Unexpected region order: %+v", view.Regions)
	}
	if view.Regions[0].Color != view.Bars[0].Color {
		t.Error("Expected La_Paz colored like the UN bar")
	}
	if view.Regions[1].Color != NeutralColor {
		t.Error("Expected neutral color for a winner missing from the tallies")
	}
	if view.Regions[2].Color != view.Bars[2].Color {
		t.Error("Expected Beni colored like the CREEMOS bar")
	}

	if len(view.Audit) != 1 || view.Audit[0].ActorID != "Usuario_7" {
		t.Errorf("Unexpected audit feed: %+v", view.Audit)
	}
}

func TestBuildView_DoesNotReorderState(t *testing.T) {
	tallies := []models.TallyRecord{
		{ShortCode: "A", VoteCount: 1},
		{ShortCode: "B", VoteCount: 2},
	}
	BuildView(models.ViewState{Tallies: tallies})

	if tallies[0].ShortCode != "A" {
		t.Error("Expected BuildView to leave the state's tallies untouched")
	}
}

func TestBuildView_Empty(t *testing.T) {
	view := BuildView(models.ViewState{Loading: true})

	if !view.Empty {
		t.Error("Expected empty placeholder flag")
	}
	if !view.Loading {
		t.Error("Expected loading flag")
	}
	if view.LastUpdated != "" {
		t.Errorf("Expected no last-updated label, got %q", view.LastUpdated)
	}
	if view.Bars == nil || view.Regions == nil || view.Audit == nil {
		t.Error("Expected non-nil slices for JSON encoding")
	}
	if view.TotalVotesLabel != "0" {
		t.Errorf("Expected total label '0', got %q", view.TotalVotesLabel)
	}
}

func TestFormatPercentage(t *testing.T) {
	tests := map[float64]string{
		25:        "25.00%",
		0:         "0.00%",
		100:       "100.00%",
		33.333333: "33.33%",
		66.666666: "66.67%",
	}
	for in, want := range tests {
		if got := FormatPercentage(in); got != want {
			t.Errorf("FormatPercentage(%v) = %q, want %q", in, got, want)
		}
	}
}
