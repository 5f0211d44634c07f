// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import "github.com/danielhkuo/election-dashboard/models"

// Fixed series palette: blue, yellow, green, red
var palette = []models.ColorPair{
	{Fill: "rgba(54, 162, 235, 0.8)", Border: "rgba(54, 162, 235, 1)"},
	{Fill: "rgba(255, 206, 0, 0.8)", Border: "rgba(255, 206, 0, 1)"},
	{Fill: "rgba(75, 192, 92, 0.8)", Border: "rgba(75, 192, 92, 1)"},
	{Fill: "rgba(255, 99, 132, 0.8)", Border: "rgba(255, 99, 132, 1)"},
}

// NeutralColor is used for map regions whose winner has no series color
var NeutralColor = models.ColorPair{
	Fill:   "rgba(148, 163, 184, 0.8)",
	Border: "rgba(148, 163, 184, 1)",
}

// PaletteSize is the number of distinct colors before AssignColor wraps
func PaletteSize() int {
	return len(palette)
}

// AssignColor maps a position in the ordered series to a color pair.
// Indexes past the end of the palette wrap around; negative indexes
// are folded into range the same way.
func AssignColor(index int) models.ColorPair {
	n := len(palette)
	i := index % n
	if i < 0 {
		i += n
	}
	return palette[i]
}
