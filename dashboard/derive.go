// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import "github.com/danielhkuo/election-dashboard/models"

// Derived holds the values computed from a tallies snapshot
type Derived struct {
	TotalVotes  int64
	Percentages []float64 // same order as the input tallies
}

// ComputeDerived sums the vote counts and computes each record's share
// of the total as a percentage. All shares are 0 when the total is 0.
func ComputeDerived(tallies []models.TallyRecord) Derived {
	var total int64
	for _, t := range tallies {
		total += t.VoteCount
	}

	percentages := make([]float64, len(tallies))
	if total == 0 {
		return Derived{TotalVotes: 0, Percentages: percentages}
	}

	for i, t := range tallies {
		percentages[i] = float64(t.VoteCount) / float64(total) * 100
	}

	return Derived{TotalVotes: total, Percentages: percentages}
}

// Percentage returns votes as a share of total, or 0 when total is 0
func Percentage(votes, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(votes) / float64(total) * 100
}
