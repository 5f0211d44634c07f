// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/election-dashboard/models"
)

const (
	viewTitle    = "Elecciones Presidenciales"
	viewSubtitle = "Monitoreo de resultados en tiempo real"

	// Last-updated label format (HH:MM:SS)
	timeLayout = "15:04:05"
)

// BuildView turns a ViewState into the render-ready dashboard model.
// Bars are sorted by votes (descending, ties by short code) and colored
// by position; map regions take the color of their winning party's bar.
func BuildView(state models.ViewState) models.DashboardView {
	tallies := slices.Clone(state.Tallies)
	slices.SortStableFunc(tallies, func(a, b models.TallyRecord) int {
		if c := cmp.Compare(b.VoteCount, a.VoteCount); c != 0 {
			return c
		}
		return cmp.Compare(a.ShortCode, b.ShortCode)
	})

	derived := ComputeDerived(tallies)

	bars := make([]models.BarView, len(tallies))
	colorByCode := make(map[string]models.ColorPair, len(tallies))
	for i, t := range tallies {
		color := AssignColor(i)
		colorByCode[t.ShortCode] = color
		bars[i] = models.BarView{
			Name:            t.Name,
			ShortCode:       t.ShortCode,
			Votes:           t.VoteCount,
			VotesLabel:      humanize.Comma(t.VoteCount),
			Percentage:      derived.Percentages[i],
			PercentageLabel: FormatPercentage(derived.Percentages[i]),
			Color:           color,
		}
	}

	view := models.DashboardView{
		Title:           viewTitle,
		Subtitle:        viewSubtitle,
		RegionFilter:    state.RegionFilter,
		TotalVotes:      derived.TotalVotes,
		TotalVotesLabel: humanize.Comma(derived.TotalVotes),
		Bars:            bars,
		Regions:         buildRegions(state.RegionResults, colorByCode),
		Audit:           buildAudit(state.AuditEntries),
		Empty:           len(tallies) == 0,
		Loading:         state.Loading,
	}
	if !state.LastRefreshedAt.IsZero() {
		view.LastUpdated = state.LastRefreshedAt.Format(timeLayout)
	}

	return view
}

// FormatPercentage renders a share with two decimals, e.g. "25.00%"
func FormatPercentage(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

func buildRegions(results []models.RegionResult, colorByCode map[string]models.ColorPair) []models.RegionView {
	regions := make([]models.RegionView, 0, len(results))
	for _, r := range results {
		color, ok := colorByCode[r.WinningPartyCode]
		if !ok {
			color = NeutralColor
		}
		regions = append(regions, models.RegionView{
			Region:            r.RegionID,
			WinningPartyName:  r.WinningPartyName,
			WinningPartyCode:  r.WinningPartyCode,
			WinningPercentage: r.WinningPercentage,
			Color:             color,
		})
	}

	// Known regions keep enumeration order, unknown ones go last
	slices.SortStableFunc(regions, func(a, b models.RegionView) int {
		return cmp.Compare(regionOrder(a.Region), regionOrder(b.Region))
	})
	return regions
}

func regionOrder(r models.Region) int {
	if i := slices.Index(models.Regions, r); i >= 0 {
		return i
	}
	return len(models.Regions)
}

func buildAudit(entries []models.AuditEntry) []models.AuditView {
	audit := make([]models.AuditView, len(entries))
	for i, e := range entries {
		audit[i] = models.AuditView{
			Timestamp: e.Timestamp,
			ActorID:   e.ActorID,
			Action:    e.Action,
			StationID: e.StationID,
		}
	}
	return audit
}
